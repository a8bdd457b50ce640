package board

import (
	"sort"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// TargetKind distinguishes the two droppable kinds on the board.
type TargetKind string

// Droppable target kinds.
const (
	TargetColumn TargetKind = "column"
	TargetCard   TargetKind = "card"
)

// Target describes one droppable on the board for the current frame.
// Column targets carry their own column in Column; card targets carry the
// column that owns the card.
type Target struct {
	ID     string       `json:"id"`
	Kind   TargetKind   `json:"kind"`
	Column types.Column `json:"column"`
	Rect   Rect         `json:"rect"`
}

// Drag captures the in-progress gesture: the dragged candidate card, its
// origin column, its current bounding box, and (when sampled this frame)
// the pointer position.
type Drag struct {
	CandidateID string       `json:"candidate_id"`
	Origin      types.Column `json:"origin"`
	Rect        Rect         `json:"rect"`
	Pointer     *Point       `json:"pointer,omitempty"`
}

// Collision is one ranked drop-target candidate. Score is tier-specific:
// overlap ratio for the intersection tier (higher is better), distance for
// the pointer and corner tiers (lower is better). Ordering in the returned
// slice is the contract; Score is informational.
type Collision struct {
	Target Target  `json:"target"`
	Score  float64 `json:"score"`
}

// Resolve ranks drop targets for the current frame. It tries rectangle
// intersection first, then pointer containment, then closest corners; the
// first tier that produces any collision wins. The result is reprioritized
// so a column-level target outside the origin column comes first. An empty
// result means the drag resolves to nothing and the move is cancelled.
// Pure function of the frame's geometry; never returns an error.
func Resolve(drag Drag, targets []Target) []Collision {
	candidates := make([]Target, 0, len(targets))
	for _, tgt := range targets {
		if tgt.Kind == TargetCard && tgt.ID == drag.CandidateID {
			continue // the dragged card is not its own drop target
		}
		candidates = append(candidates, tgt)
	}
	if len(candidates) == 0 {
		return nil
	}

	collisions := rectIntersections(drag.Rect, candidates)
	if len(collisions) == 0 && drag.Pointer != nil {
		collisions = pointerWithin(*drag.Pointer, candidates)
	}
	if len(collisions) == 0 {
		collisions = closestCorners(drag.Rect, candidates)
	}
	return promoteCrossColumn(drag.Origin, collisions)
}

// EffectiveColumn returns the column a collision resolves to: the column
// itself for column targets, the owning column for card targets.
func EffectiveColumn(c Collision) types.Column {
	return c.Target.Column
}

// rectIntersections ranks targets overlapping the dragged rect, best
// overlap first.
func rectIntersections(dragged Rect, targets []Target) []Collision {
	var out []Collision
	for _, tgt := range targets {
		if ratio := intersectionRatio(dragged, tgt.Rect); ratio > 0 {
			out = append(out, Collision{Target: tgt, Score: ratio})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// pointerWithin ranks targets containing the pointer, nearest center first.
func pointerWithin(pointer Point, targets []Target) []Collision {
	var out []Collision
	for _, tgt := range targets {
		if tgt.Rect.Contains(pointer) {
			out = append(out, Collision{Target: tgt, Score: distance(pointer, tgt.Rect.Center())})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// closestCorners ranks every target by average corner distance to the
// dragged rect. This tier never comes back empty while targets exist, so a
// drag always resolves to something once it reaches here.
func closestCorners(dragged Rect, targets []Target) []Collision {
	out := make([]Collision, 0, len(targets))
	for _, tgt := range targets {
		out = append(out, Collision{Target: tgt, Score: cornersDistance(dragged, tgt.Rect)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// promoteCrossColumn moves the best column-level target outside the origin
// column to the front. An empty destination column has no card children to
// collide with, so without the promotion a drag over it can rank a card in
// the origin column first and the move silently fails.
func promoteCrossColumn(origin types.Column, collisions []Collision) []Collision {
	for i, c := range collisions {
		if c.Target.Kind == TargetColumn && c.Target.Column != origin {
			if i == 0 {
				return collisions
			}
			promoted := collisions[i]
			out := make([]Collision, 0, len(collisions))
			out = append(out, promoted)
			out = append(out, collisions[:i]...)
			out = append(out, collisions[i+1:]...)
			return out
		}
	}
	return collisions
}
