// Package target models the fully-qualified name of the remote artifact
// being published.
package target

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/tomparisbiz/cogpush/internal/errors"
)

const (
	// DefaultRegistry is the Replicate model registry prefix.
	DefaultRegistry = "r8.im"

	// DefaultModel is the artifact this tool publishes.
	DefaultModel = "cyberpony-multi-lora"
)

// namePattern matches valid account and model name segments. Replicate
// names are lowercase alphanumerics with internal hyphens, underscores,
// or dots.
var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Identifier is a push destination of the form registry/account/model.
type Identifier struct {
	Registry string
	Account  string
	Model    string
}

// New builds an identifier for the given account using the default registry
// and model.
func New(account string) Identifier {
	return Identifier{
		Registry: DefaultRegistry,
		Account:  account,
		Model:    DefaultModel,
	}
}

// Parse splits a registry/account/model string into an Identifier.
func Parse(s string) (Identifier, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Identifier{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidTargetFormat, s)
	}
	id := Identifier{Registry: parts[0], Account: parts[1], Model: parts[2]}
	if err := id.Validate(); err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// Validate checks that every segment is present and well-formed.
func (id Identifier) Validate() error {
	if id.Registry == "" {
		return fmt.Errorf("%w: missing registry", apperrors.ErrInvalidTargetFormat)
	}
	if id.Account == "" {
		return apperrors.ErrAccountRequired
	}
	if !namePattern.MatchString(id.Account) {
		return fmt.Errorf("invalid account name %q", id.Account)
	}
	if id.Model == "" || !namePattern.MatchString(id.Model) {
		return fmt.Errorf("invalid model name %q", id.Model)
	}
	return nil
}

// String renders the identifier as passed to `cog push`.
func (id Identifier) String() string {
	return id.Registry + "/" + id.Account + "/" + id.Model
}
