package domain

import (
	"testing"

	analyticsdomain "github.com/smallbiznis/dentalpay/internal/analytics/domain"
	"github.com/stretchr/testify/assert"
)

func TestSlugRoundTripsWithNameNormalization(t *testing.T) {
	for _, name := range []string{
		"Orthodontics",
		"Oral and Maxillofacial Surgery",
		"Pediatric Dentistry",
		"Dental Public Health",
	} {
		assert.Equal(t, name, analyticsdomain.NormalizeSpecialtyName(Slugify(name)))
	}
}
