package cli

import (
	"github.com/keeper-labs/keeper-cli/internal/core/domain"
)

// parseDocType converts a --type flag value into a domain type.
func parseDocType(value string) (domain.DocType, error) {
	docType := domain.DocType(value)
	if err := docType.Validate(); err != nil {
		return "", err
	}
	return docType, nil
}
