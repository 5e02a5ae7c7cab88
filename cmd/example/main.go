package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	backoffice "github.com/goliatone/go-backoffice"
)

// Demo driver for the back-office engine. Reads the backend location and
// credentials from the environment (or a local .env), loads one resource
// screen, and prints what an admin UI would render.
//
// Environment:
//
//	BACKOFFICE_BASE_URL        backend REST root (required)
//	BACKOFFICE_SESSION_COOKIE  admin session cookie value
//	BACKOFFICE_NEWSLETTER_TOKEN  bearer token for the newsletter backend
//	BACKOFFICE_IMGBB_KEY       enables uploads when set
//	BACKOFFICE_RESOURCE        resource screen to drive (default jobs)
//	BACKOFFICE_SEARCH          search text applied to the list
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg := backoffice.DefaultConfig()
	cfg.Gateway.BaseURL = os.Getenv("BACKOFFICE_BASE_URL")
	cfg.Gateway.SessionCookie = os.Getenv("BACKOFFICE_SESSION_COOKIE")
	cfg.Gateway.RequestTimeout = 15 * time.Second
	cfg.Newsletter.BearerToken = os.Getenv("BACKOFFICE_NEWSLETTER_TOKEN")

	if key := os.Getenv("BACKOFFICE_IMGBB_KEY"); key != "" {
		cfg.Features.Uploads = true
		cfg.Upload.APIKey = key
	}

	cfg.Features.Journal = true
	cfg.Journal.Driver = "memory"
	cfg.Features.Logger = true
	cfg.Logging.Provider = "console"
	cfg.Logging.Level = "debug"

	module, err := backoffice.New(cfg)
	if err != nil {
		log.Fatalf("initialise back-office: %v", err)
	}
	defer module.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := module.Start(ctx); err != nil {
		log.Printf("warm-up: %v", err)
	}
	if settings := module.Settings(); settings != nil && settings.Loaded() {
		fmt.Printf("site: %s\n", settings.GetString("siteName"))
	}

	resource := strings.ToLower(strings.TrimSpace(os.Getenv("BACKOFFICE_RESOURCE")))
	if resource == "" {
		resource = "jobs"
	}

	controller, err := module.Controller(resource)
	if err != nil {
		log.Fatalf("resolve controller: %v", err)
	}
	if err := controller.Load(ctx); err != nil {
		log.Fatalf("load %s: %v", resource, err)
	}

	if search := os.Getenv("BACKOFFICE_SEARCH"); search != "" {
		controller.SetSearch(search)
	}

	rows := make([]map[string]any, 0)
	for _, item := range controller.Visible() {
		row := map[string]any{"id": item.ID}
		if item.Active != nil {
			row["active"] = *item.Active
		}
		for key, value := range item.Fields {
			row[key] = value
		}
		rows = append(rows, row)
	}

	payload := map[string]any{
		"resource": resource,
		"page":     controller.Page(),
		"pages":    controller.TotalPages(),
		"total":    controller.TotalCount(),
		"rows":     rows,
	}

	if journal := module.Journal(); journal != nil {
		entries, err := journal.Recent(ctx, 5)
		if err == nil {
			recent := make([]string, 0, len(entries))
			for _, entry := range entries {
				recent = append(recent, entry.Resource+"/"+entry.Kind+"/"+entry.TargetID)
			}
			payload["journal"] = recent
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		log.Fatalf("encode output: %v", err)
	}

	if pageEnv := os.Getenv("BACKOFFICE_PAGE"); pageEnv != "" {
		if n, err := strconv.Atoi(pageEnv); err == nil {
			if err := controller.SetPage(ctx, n); err != nil {
				log.Fatalf("set page: %v", err)
			}
			fmt.Printf("page %d of %d, %d visible\n", controller.Page(), controller.TotalPages(), len(controller.Visible()))
		}
	}
}
