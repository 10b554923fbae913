// Package enroll implements the participant↔formation reconciliation flow:
// fetch both sides of the relationship, diff by id, let the operator pick
// from the complement, then write one membership at a time and merge the
// results into the local view of the formation.
//
// Writes are deliberately sequential. The API gives no guarantee about
// concurrent writes against the same formation's participant collection, and
// one-at-a-time issuance gives a deterministic order and exact partial-failure
// attribution: when write i fails, exactly the first i memberships exist, the
// rest were never attempted, and nothing is rolled back.
package enroll

import (
	"context"
	"errors"

	"gestion-formations/internal/models"
)

// ErrEmptySelection rejects a confirm with nothing selected before any
// network round trip.
var ErrEmptySelection = errors.New("enroll: empty selection")

// Service is the slice of the API client the flow needs.
type Service interface {
	ListParticipants(ctx context.Context) ([]models.Participant, error)
	GetFormation(ctx context.Context, id int64) (*models.Formation, error)
	Enroll(ctx context.Context, participantID, formationID int64) error
	Withdraw(ctx context.Context, participantID, formationID int64) error
}

// Candidates is what the enrollment dialog shows: the formation, the ids
// already enrolled and the participants still available.
type Candidates struct {
	Formation *models.Formation
	Enrolled  map[int64]bool
	Available []models.Participant
}

// LoadCandidates fetches the full participant set and the formation's current
// members and computes available = all − enrolled. It must run on every
// dialog open, never from a cache: membership may have changed since the
// last open, including through this very flow.
func LoadCandidates(ctx context.Context, svc Service, formationID int64) (*Candidates, error) {
	formation, err := svc.GetFormation(ctx, formationID)
	if err != nil {
		return nil, err
	}
	all, err := svc.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	enrolled := make(map[int64]bool, len(formation.Participants))
	for _, p := range formation.Participants {
		enrolled[p.ID] = true
	}
	available := make([]models.Participant, 0, len(all))
	for _, p := range all {
		if !enrolled[p.ID] {
			available = append(available, p)
		}
	}
	return &Candidates{Formation: formation, Enrolled: enrolled, Available: available}, nil
}

// Selection is the operator's multi-select, a set that remembers insertion
// order so writes go out in the order the ids were picked.
type Selection struct {
	order  []int64
	member map[int64]bool
}

// NewSelection creates an empty selection, optionally pre-toggled with ids.
func NewSelection(ids ...int64) *Selection {
	s := &Selection{member: make(map[int64]bool)}
	for _, id := range ids {
		s.Toggle(id)
	}
	return s
}

// Toggle flips membership of id. Applying it twice restores the original set.
func (s *Selection) Toggle(id int64) {
	if s.member[id] {
		delete(s.member, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.member[id] = true
	s.order = append(s.order, id)
}

// Contains reports membership.
func (s *Selection) Contains(id int64) bool { return s.member[id] }

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.order) }

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []int64 {
	out := make([]int64, len(s.order))
	copy(out, s.order)
	return out
}

// Outcome reports how a confirm went: all writes, some writes, or none.
// Partial success is a first-class result, not an error to discard: the UI
// must tell the operator "Added of Requested" along with the failure.
type Outcome struct {
	Requested int
	Added     []models.Participant
	FailedID  int64
	Err       error
}

// Complete reports whether every requested write succeeded.
func (o Outcome) Complete() bool { return o.Err == nil }

// Partial reports whether some but not all writes landed.
func (o Outcome) Partial() bool { return o.Err != nil && len(o.Added) > 0 }

// Confirm writes one membership per selected id, strictly in order, awaiting
// each call before issuing the next. The first failure stops the loop;
// memberships already written stay written, both remotely and in the local
// formation. Participants already present locally are not duplicated.
func Confirm(ctx context.Context, svc Service, c *Candidates, sel *Selection) Outcome {
	ids := sel.IDs()
	if len(ids) == 0 {
		return Outcome{Err: ErrEmptySelection}
	}

	byID := make(map[int64]models.Participant, len(c.Available))
	for _, p := range c.Available {
		byID[p.ID] = p
	}

	out := Outcome{Requested: len(ids)}
	for _, id := range ids {
		if err := svc.Enroll(ctx, id, c.Formation.ID); err != nil {
			out.FailedID = id
			out.Err = err
			return out
		}
		p, ok := byID[id]
		if !ok {
			p = models.Participant{ID: id}
		}
		if merge(c.Formation, p) {
			out.Added = append(out.Added, p)
		}
	}
	return out
}

// merge appends p to the formation's participant list unless the id is
// already present. Returns true when the list grew.
func merge(f *models.Formation, p models.Participant) bool {
	for _, existing := range f.Participants {
		if existing.ID == p.ID {
			return false
		}
	}
	f.Participants = append(f.Participants, p)
	return true
}

// Remove withdraws one participant from the formation. The local list is
// only touched after the server confirms; on failure it stays as it was.
func Remove(ctx context.Context, svc Service, f *models.Formation, participantID int64) error {
	if err := svc.Withdraw(ctx, participantID, f.ID); err != nil {
		return err
	}
	kept := f.Participants[:0]
	for _, p := range f.Participants {
		if p.ID != participantID {
			kept = append(kept, p)
		}
	}
	f.Participants = kept
	return nil
}
