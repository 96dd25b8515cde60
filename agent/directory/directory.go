package directory

import (
	"strings"

	contractx "github.com/webroker/concierge/agent/contract"
)

// Directory holds broker reference data in insertion order. It is
// read-only after construction, so concurrent searches are safe.
type Directory struct {
	brokers []contractx.Broker
}

func New(brokers ...contractx.Broker) *Directory {
	records := make([]contractx.Broker, len(brokers))
	copy(records, brokers)
	return &Directory{brokers: records}
}

// Default returns the demo directory shipped with the product.
func Default() *Directory {
	return New(
		contractx.Broker{ID: "1", Name: "Sarah Jenkins", Specialty: "Luxury Condos", Rating: 4.9, DealsClosed: 142, AvatarURL: "https://picsum.photos/100/100?random=1"},
		contractx.Broker{ID: "2", Name: "Michael Ross", Specialty: "Commercial Real Estate", Rating: 4.7, DealsClosed: 89, AvatarURL: "https://picsum.photos/100/100?random=2"},
		contractx.Broker{ID: "3", Name: "Elena Rodriguez", Specialty: "Suburban Family Homes", Rating: 4.8, DealsClosed: 215, AvatarURL: "https://picsum.photos/100/100?random=3"},
		contractx.Broker{ID: "4", Name: "David Chen", Specialty: "Urban Lofts", Rating: 4.6, DealsClosed: 67, AvatarURL: "https://picsum.photos/100/100?random=4"},
	)
}

// Search matches brokers whose specialty label contains the query, or
// whose first specialty token appears in the query, case-insensitively.
//
// When nothing matches, the first two brokers in insertion order are
// returned instead of an empty list. That fallback is a deliberate product
// policy (a recommendation response must always offer someone), tolerable
// at the current directory size; revisit before the directory grows.
func (d *Directory) Search(specialty string) []contractx.Broker {
	query := strings.ToLower(strings.TrimSpace(specialty))

	matched := make([]contractx.Broker, 0, len(d.brokers))
	for _, b := range d.brokers {
		label := strings.ToLower(b.Specialty)
		if strings.Contains(label, query) || containsFirstToken(query, label) {
			matched = append(matched, b)
		}
	}

	if len(matched) == 0 && len(d.brokers) > 0 {
		end := 2
		if end > len(d.brokers) {
			end = len(d.brokers)
		}
		matched = append(matched, d.brokers[:end]...)
	}

	return dedupeByID(matched)
}

func containsFirstToken(query, label string) bool {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return false
	}
	return strings.Contains(query, fields[0])
}

func dedupeByID(brokers []contractx.Broker) []contractx.Broker {
	seen := make(map[string]struct{}, len(brokers))
	out := make([]contractx.Broker, 0, len(brokers))
	for _, b := range brokers {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return out
}
