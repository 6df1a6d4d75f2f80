package snake

// SpriteID names one of the fifteen snake sprites. The string value doubles as
// the asset file stem ("head_up" -> head_up.png).
type SpriteID string

const (
	SpriteApple           SpriteID = "apple"
	SpriteBodyHorizontal  SpriteID = "body_horizontal"
	SpriteBodyVertical    SpriteID = "body_vertical"
	SpriteBodyTopLeft     SpriteID = "body_topleft"
	SpriteBodyTopRight    SpriteID = "body_topright"
	SpriteBodyBottomLeft  SpriteID = "body_bottomleft"
	SpriteBodyBottomRight SpriteID = "body_bottomright"
	SpriteHeadUp          SpriteID = "head_up"
	SpriteHeadDown        SpriteID = "head_down"
	SpriteHeadLeft        SpriteID = "head_left"
	SpriteHeadRight       SpriteID = "head_right"
	SpriteTailUp          SpriteID = "tail_up"
	SpriteTailDown        SpriteID = "tail_down"
	SpriteTailLeft        SpriteID = "tail_left"
	SpriteTailRight       SpriteID = "tail_right"
)

// SpriteIDs is the fixed batch every AssetProvider must load.
var SpriteIDs = []SpriteID{
	SpriteApple,
	SpriteBodyHorizontal,
	SpriteBodyVertical,
	SpriteBodyTopLeft,
	SpriteBodyTopRight,
	SpriteBodyBottomLeft,
	SpriteBodyBottomRight,
	SpriteHeadUp, SpriteHeadDown, SpriteHeadLeft, SpriteHeadRight,
	SpriteTailUp, SpriteTailDown, SpriteTailLeft, SpriteTailRight,
}

var headSprites = [...]SpriteID{
	DirUp:    SpriteHeadUp,
	DirDown:  SpriteHeadDown,
	DirLeft:  SpriteHeadLeft,
	DirRight: SpriteHeadRight,
}

var tailSprites = [...]SpriteID{
	DirUp:    SpriteTailUp,
	DirDown:  SpriteTailDown,
	DirLeft:  SpriteTailLeft,
	DirRight: SpriteTailRight,
}

// turn is an (incoming, outgoing) movement pair through a body segment.
type turn struct {
	in, out Direction
}

// cornerSprites covers all eight perpendicular pairs. Incoming is the vector
// from the previous (headward) segment to this one, outgoing from this one to
// the next (tailward) segment. A corner sprite is named after the two sides of
// the cell its neighbours sit on.
var cornerSprites = map[turn]SpriteID{
	{in: DirUp, out: DirRight}:   SpriteBodyBottomRight,
	{in: DirRight, out: DirUp}:   SpriteBodyTopLeft,
	{in: DirUp, out: DirLeft}:    SpriteBodyBottomLeft,
	{in: DirLeft, out: DirUp}:    SpriteBodyTopRight,
	{in: DirDown, out: DirRight}: SpriteBodyTopRight,
	{in: DirRight, out: DirDown}: SpriteBodyBottomLeft,
	{in: DirDown, out: DirLeft}:  SpriteBodyTopLeft,
	{in: DirLeft, out: DirDown}:  SpriteBodyBottomRight,
}

// HeadSprite selects the head sprite from the committed direction alone.
func HeadSprite(dir Direction) SpriteID {
	return headSprites[dir]
}

// TailSprite points the tail along the vector from the segment before the
// tail to the tail itself.
func TailSprite(beforeLast, last Cell) SpriteID {
	d, ok := DirectionOf(last.Sub(beforeLast))
	if !ok {
		return SpriteTailLeft
	}
	return tailSprites[d]
}

// BodySprite picks a straight or corner sprite for cur given its neighbours.
// ok is false only for geometry a valid snake never produces (non-adjacent or
// reversing neighbours).
func BodySprite(prev, cur, next Cell) (id SpriteID, ok bool) {
	in, inOK := DirectionOf(cur.Sub(prev))
	out, outOK := DirectionOf(next.Sub(cur))
	if !inOK || !outOK {
		return "", false
	}

	inHorizontal := in == DirLeft || in == DirRight
	outHorizontal := out == DirLeft || out == DirRight
	switch {
	case inHorizontal && outHorizontal:
		return SpriteBodyHorizontal, true
	case !inHorizontal && !outHorizontal:
		return SpriteBodyVertical, true
	}

	id, ok = cornerSprites[turn{in: in, out: out}]
	return id, ok
}

// SegmentSprite resolves the sprite for segment i of body, given the committed
// direction used for the head.
func SegmentSprite(body []Cell, i int, dir Direction) (SpriteID, bool) {
	switch {
	case i < 0 || i >= len(body):
		return "", false
	case i == 0:
		return HeadSprite(dir), true
	case i == len(body)-1:
		return TailSprite(body[i-1], body[i]), true
	default:
		return BodySprite(body[i-1], body[i], body[i+1])
	}
}
