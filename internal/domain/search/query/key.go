package query

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// CacheKey returns a canonical key for the validated query. Fields are
// serialized in a fixed order, so two semantically identical queries always
// map to the same key regardless of parameter insertion order, and any field
// difference (pagination included) yields a distinct key.
func (q *Query) CacheKey() string {
	var b strings.Builder

	b.WriteString("q=")
	b.WriteString(q.normText)

	b.WriteString("|cat=")
	if q.category != nil {
		b.WriteString(string(*q.category))
	}

	b.WriteString("|geo=")
	if q.anchor != nil {
		b.WriteString(fmtFloat(q.anchor.Lat))
		b.WriteByte(',')
		b.WriteString(fmtFloat(q.anchor.Lon))
		b.WriteByte(',')
		b.WriteString(fmtFloat(q.radiusKm))
	}

	b.WriteString("|box=")
	if q.bounds != nil {
		b.WriteString(fmtFloat(q.bounds.MinLat()))
		b.WriteByte(',')
		b.WriteString(fmtFloat(q.bounds.MinLon()))
		b.WriteByte(',')
		b.WriteString(fmtFloat(q.bounds.MaxLat()))
		b.WriteByte(',')
		b.WriteString(fmtFloat(q.bounds.MaxLon()))
	}

	b.WriteString("|price=")
	if q.minPrice != nil {
		b.WriteString(strconv.Itoa(*q.minPrice))
	}
	b.WriteByte(',')
	if q.maxPrice != nil {
		b.WriteString(strconv.Itoa(*q.maxPrice))
	}

	b.WriteString("|rating=")
	b.WriteString(fmtFloat(q.minRating))

	b.WriteString("|featured=")
	b.WriteString(strconv.FormatBool(q.featuredOnly))

	b.WriteString("|open=")
	b.WriteString(strconv.FormatBool(q.openNow))

	b.WriteString("|sort=")
	b.WriteString(string(q.sortBy))
	b.WriteByte(',')
	b.WriteString(string(q.sortOrder))

	b.WriteString("|page=")
	b.WriteString(strconv.Itoa(q.page))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(q.pageSize))

	h := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(h[:])
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
