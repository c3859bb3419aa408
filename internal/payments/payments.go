package payments

import (
	"strings"

	"github.com/google/uuid"
)

// NewReference generates a placeholder payment reference. A real
// gateway integration would return its own id here.
func NewReference() string {
	return "PAY-" + strings.ToUpper(uuid.NewString()[:18])
}
