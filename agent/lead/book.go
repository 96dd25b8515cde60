package lead

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	contractx "github.com/webroker/concierge/agent/contract"
)

const (
	guestName      = "GUEST.USER (YOU)"
	pendingBudget  = "PENDING ANALYSIS"
	hotLeadScore   = 99
	interestPrefix = "Interested in: "
)

// FromInterest synthesizes a fresh lead from a raw specialty query. Leads
// converted from a live chat are always treated as hot: fixed HIGH urgency
// and a near-max match score, budget left for later analysis.
func FromInterest(interest string) contractx.Lead {
	return contractx.Lead{
		ID:          uuid.NewString(),
		Name:        guestName,
		Budget:      pendingBudget,
		Preferences: interestPrefix + strings.ToUpper(strings.TrimSpace(interest)),
		Urgency:     contractx.UrgencyHigh,
		MatchScore:  hotLeadScore,
	}
}

// Book is the process-lifetime lead registry. Newest lead first. There is
// no update or delete; the only writer path is a prepend.
type Book struct {
	mu    sync.RWMutex
	leads []contractx.Lead
}

func NewBook(seed ...contractx.Lead) *Book {
	leads := make([]contractx.Lead, len(seed))
	copy(leads, seed)
	return &Book{leads: leads}
}

// DefaultBook returns a book pre-populated with the demo leads.
func DefaultBook() *Book {
	return NewBook(
		contractx.Lead{ID: "101", Name: "Subject 404", Budget: "$1.2M - $1.5M", Preferences: "Penthouse, Downtown, High Security", Urgency: contractx.UrgencyHigh, MatchScore: 92},
		contractx.Lead{ID: "102", Name: "Subject 771", Budget: "$800k", Preferences: "Loft, Industrial Zone, Work/Live", Urgency: contractx.UrgencyMed, MatchScore: 78},
	)
}

// Record synthesizes a lead from the interest text and prepends it.
func (b *Book) Record(interest string) contractx.Lead {
	l := FromInterest(interest)
	b.Add(l)
	return l
}

// Add prepends an externally built lead.
func (b *Book) Add(l contractx.Lead) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.leads = append([]contractx.Lead{l}, b.leads...)
}

// List returns a snapshot of the current contents, newest first.
func (b *Book) List() []contractx.Lead {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]contractx.Lead, len(b.leads))
	copy(out, b.leads)
	return out
}
