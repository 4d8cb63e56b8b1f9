package canvas

// Points returns the arrow's world-space polyline: start, optional bend,
// and tip, with offsets scaled by scale.
func (a *Arrow) Points(position, scale Vec2) []Vec2 {
	pts := make([]Vec2, 0, 3)
	pts = append(pts, position)
	if a.HasMid {
		pts = append(pts, position.Add(a.Mid.MulComp(scale)))
	}
	return append(pts, position.Add(a.End.MulComp(scale)))
}

// Head returns the arrowhead triangle (tip, left, right) for the polyline
// produced by Points. A degenerate final segment yields a collapsed
// triangle at the tip.
func (a *Arrow) Head(pts []Vec2) [3]Vec2 {
	tip := pts[len(pts)-1]
	from := pts[len(pts)-2]
	dir := tip.Sub(from).Normalize()
	base := tip.Sub(dir.Mul(a.HeadSize))
	side := dir.Perp().Mul(a.HeadSize / 2)
	return [3]Vec2{tip, base.Add(side), base.Sub(side)}
}
