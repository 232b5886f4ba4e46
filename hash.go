package provdir

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns an xxHash fingerprint of the record's extracted fields.
// Storage backends compare fingerprints to recognize an unchanged record
// during an upsert without comparing every column. Storage bookkeeping fields
// (ID, timestamps) are excluded.
func (p *Provider) Fingerprint() string {
	var b strings.Builder
	for _, s := range []string{
		p.Name,
		derefOrEmpty(p.Specialty),
		derefOrEmpty(p.ProfileURL),
		derefOrEmpty(p.ImageURL),
		derefOrEmpty(p.Location),
		derefOrEmpty(p.Phone),
	} {
		b.WriteString(s)
		b.WriteByte(0)
	}
	fmt.Fprintf(&b, "%t|%t|%t|", p.HasMultipleLocations, p.IsEmployedProvider, p.IsAcceptingNewPatients)
	if p.Rating != nil {
		fmt.Fprintf(&b, "%g", *p.Rating)
	}
	b.WriteByte(0)
	if p.RatingCount != nil {
		fmt.Fprintf(&b, "%d", *p.RatingCount)
	}

	sum := make([]byte, 8)
	binary.BigEndian.PutUint64(sum, xxhash.Sum64String(b.String()))
	return hex.EncodeToString(sum)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
