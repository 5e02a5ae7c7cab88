package commands

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-backoffice/internal/gateway"
)

const (
	createResourceMessageType = "backoffice.resource.create"
	updateResourceMessageType = "backoffice.resource.update"
	toggleResourceMessageType = "backoffice.resource.toggle"
	removeResourceMessageType = "backoffice.resource.remove"
)

// ResourceMutator is the controller surface the resource commands drive. The
// list controllers satisfy it through the container's per-resource lookup.
type ResourceMutator interface {
	Create(ctx context.Context, resource string, payload map[string]any) (*gateway.Record, error)
	Update(ctx context.Context, resource, id string, patch map[string]any) (*gateway.Record, error)
	Toggle(ctx context.Context, resource, id string) (*gateway.Record, error)
	Remove(ctx context.Context, resource, id string) error
}

// CreateResourceCommand creates a record for the named resource.
type CreateResourceCommand struct {
	Resource string         `json:"resource"`
	Payload  map[string]any `json:"payload"`
}

// Type implements command.Message.
func (CreateResourceCommand) Type() string { return createResourceMessageType }

// Validate satisfies command.Message.
func (cmd CreateResourceCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Resource, validation.Required, validation.By(requiredName("backoffice.resource.create.resource_required"))),
		validation.Field(&cmd.Payload, validation.Required.Error("payload is required")),
	)
}

// UpdateResourceCommand patches a record for the named resource.
type UpdateResourceCommand struct {
	Resource string         `json:"resource"`
	TargetID string         `json:"target_id"`
	Patch    map[string]any `json:"patch"`
}

// Type implements command.Message.
func (UpdateResourceCommand) Type() string { return updateResourceMessageType }

// Validate satisfies command.Message.
func (cmd UpdateResourceCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Resource, validation.Required, validation.By(requiredName("backoffice.resource.update.resource_required"))),
		validation.Field(&cmd.TargetID, validation.Required, validation.By(requiredName("backoffice.resource.update.target_required"))),
		validation.Field(&cmd.Patch, validation.Required.Error("patch is required")),
	)
}

// ToggleResourceCommand flips the active flag of a record.
type ToggleResourceCommand struct {
	Resource string `json:"resource"`
	TargetID string `json:"target_id"`
}

// Type implements command.Message.
func (ToggleResourceCommand) Type() string { return toggleResourceMessageType }

// Validate satisfies command.Message.
func (cmd ToggleResourceCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Resource, validation.Required, validation.By(requiredName("backoffice.resource.toggle.resource_required"))),
		validation.Field(&cmd.TargetID, validation.Required, validation.By(requiredName("backoffice.resource.toggle.target_required"))),
	)
}

// RemoveResourceCommand deletes a record.
type RemoveResourceCommand struct {
	Resource string `json:"resource"`
	TargetID string `json:"target_id"`
}

// Type implements command.Message.
func (RemoveResourceCommand) Type() string { return removeResourceMessageType }

// Validate satisfies command.Message.
func (cmd RemoveResourceCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Resource, validation.Required, validation.By(requiredName("backoffice.resource.remove.resource_required"))),
		validation.Field(&cmd.TargetID, validation.Required, validation.By(requiredName("backoffice.resource.remove.target_required"))),
	)
}

// NewCreateResourceHandler wires the create command to the mutator.
func NewCreateResourceHandler(mutator ResourceMutator, opts ...HandlerOption[CreateResourceCommand]) *Handler[CreateResourceCommand] {
	return NewHandler(func(ctx context.Context, msg CreateResourceCommand) error {
		_, err := mutator.Create(ctx, msg.Resource, msg.Payload)
		return err
	}, opts...)
}

// NewUpdateResourceHandler wires the update command to the mutator.
func NewUpdateResourceHandler(mutator ResourceMutator, opts ...HandlerOption[UpdateResourceCommand]) *Handler[UpdateResourceCommand] {
	return NewHandler(func(ctx context.Context, msg UpdateResourceCommand) error {
		_, err := mutator.Update(ctx, msg.Resource, msg.TargetID, msg.Patch)
		return err
	}, opts...)
}

// NewToggleResourceHandler wires the toggle command to the mutator.
func NewToggleResourceHandler(mutator ResourceMutator, opts ...HandlerOption[ToggleResourceCommand]) *Handler[ToggleResourceCommand] {
	return NewHandler(func(ctx context.Context, msg ToggleResourceCommand) error {
		_, err := mutator.Toggle(ctx, msg.Resource, msg.TargetID)
		return err
	}, opts...)
}

// NewRemoveResourceHandler wires the remove command to the mutator.
func NewRemoveResourceHandler(mutator ResourceMutator, opts ...HandlerOption[RemoveResourceCommand]) *Handler[RemoveResourceCommand] {
	return NewHandler(func(ctx context.Context, msg RemoveResourceCommand) error {
		return mutator.Remove(ctx, msg.Resource, msg.TargetID)
	}, opts...)
}

func requiredName(code string) func(value any) error {
	return func(value any) error {
		if s, ok := value.(string); !ok || strings.TrimSpace(s) == "" {
			return validation.NewError(code, "value is required")
		}
		return nil
	}
}
