package memory

import (
	"testing"

	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/docstore/docstoretest"
)

func TestCompliance(t *testing.T) {
	docstoretest.Run(t, func(t *testing.T) docstore.Backend {
		return New()
	})
}
