package entity

import (
	"snake-hat/game/types"
)

// Segment is one lit cell of the snake and the way it is facing
type Segment struct {
	types.Cell
	Direction types.Direction
}

// Snake holds the ordered segments, head first.
type Snake struct {
	Body  []Segment
	Color types.Color
}

func NewSnake(start types.Point, dir types.Direction, color types.Color) *Snake {
	return &Snake{
		Body:  []Segment{newSegment(start, dir, color)},
		Color: color,
	}
}

func newSegment(p types.Point, dir types.Direction, color types.Color) Segment {
	return Segment{
		Cell:      types.Cell{Point: p, Color: color},
		Direction: dir,
	}
}

func (s *Snake) Len() int {
	return len(s.Body)
}

func (s *Snake) GetHead() Segment {
	return s.Body[0]
}

func (s *Snake) GetTail() Segment {
	return s.Body[len(s.Body)-1]
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p types.Point) bool {
	for _, seg := range s.Body {
		if seg.Point == p {
			return true
		}
	}
	return false
}

// Points returns a copy of the segment coordinates, head first.
func (s *Snake) Points() []types.Point {
	points := make([]types.Point, len(s.Body))
	for i, seg := range s.Body {
		points[i] = seg.Point
	}
	return points
}

// Advance shifts every segment onto its predecessor, from tail toward head,
// then puts the head on next facing dir. It returns the cell the tail vacated.
func (s *Snake) Advance(next types.Point, dir types.Direction) types.Cell {
	vacated := s.GetTail().Cell
	for i := len(s.Body) - 1; i > 0; i-- {
		s.Body[i].Point = s.Body[i-1].Point
		s.Body[i].Direction = s.Body[i-1].Direction
	}
	s.Body[0].Point = next
	s.Body[0].Direction = dir
	return vacated
}

// Append adds a tail segment at p facing dir and returns it.
func (s *Snake) Append(p types.Point, dir types.Direction) Segment {
	seg := newSegment(p, dir, s.Color)
	s.Body = append(s.Body, seg)
	return seg
}
