package entity

import "snake-hat/game/types"

type Apple struct {
	types.Cell
}

func NewApple(p types.Point) *Apple {
	return &Apple{Cell: types.Cell{Point: p, Color: types.AppleColor}}
}
