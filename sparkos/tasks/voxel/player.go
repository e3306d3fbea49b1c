package voxel

import (
	"sparkcraft/hal"
	"sparkcraft/sparkos/quarkgl"
	vox "sparkcraft/sparkos/voxel"
)

// moveSpeed is in world units per second.
const moveSpeed = vox.BlockSize * 8

// maxStepMs caps the time covered by one move.
const maxStepMs = 250

// keyState tracks which keypad keys are held.
type keyState [hal.Key9 + 1]bool

func (k *keyState) set(code hal.KeyCode, press bool) {
	if int(code) < len(k) {
		k[code] = press
	}
}

func (k *keyState) held(code hal.KeyCode) bool {
	return int(code) < len(k) && k[code]
}

// player is the camera: a world-space position and (pitch, yaw) in degrees.
// Positive pitch looks down.
type player struct {
	pos   quarkgl.Vec3
	pitch quarkgl.Scalar
	yaw   quarkgl.Scalar
}

// newPlayer places the camera in front of the first chunk of a dim^3 grid.
func newPlayer(dim int) player {
	return player{pos: quarkgl.V3Int(vox.BlockSize*dim, 0, -2*vox.BlockSize*dim)}
}

// look applies one touchpad report to the view angles.
func (p *player) look(r hal.TouchReport) {
	p.yaw = (p.yaw + quarkgl.ScalarFromInt(r.XVel)).NormaliseAngle()

	pitch := p.pitch - quarkgl.ScalarFromInt(r.YVel)
	deg90, deg180, deg270 := quarkgl.ScalarFromInt(90), quarkgl.ScalarFromInt(180), quarkgl.ScalarFromInt(270)
	switch {
	case pitch > deg90 && pitch < deg180:
		pitch = deg90
	case pitch > deg180 && pitch < deg270:
		pitch = deg270
	}
	p.pitch = pitch.NormaliseAngle()
}

func (p *player) forward() quarkgl.Vec3 {
	return quarkgl.Vec3{X: quarkgl.Sin(p.yaw), Z: quarkgl.Cos(p.yaw)}
}

func (p *player) right() quarkgl.Vec3 {
	a := p.yaw + quarkgl.ScalarFromInt(90)
	return quarkgl.Vec3{X: quarkgl.Sin(a), Z: quarkgl.Cos(a)}
}

// move advances the position for dtMs milliseconds of held keys.
func (p *player) move(dtMs uint64, keys *keyState) {
	if dtMs == 0 {
		return
	}
	dt := min(dtMs, maxStepMs)
	step := quarkgl.Scalar(int64(quarkgl.ScalarFromInt(moveSpeed)) * int64(dt) / hal.TickHz)

	var dir quarkgl.Vec3
	if keys.held(hal.Key8) {
		dir = dir.Add(p.forward())
	}
	if keys.held(hal.Key2) {
		dir = dir.Sub(p.forward())
	}
	if keys.held(hal.Key6) {
		dir = dir.Add(p.right())
	}
	if keys.held(hal.Key4) {
		dir = dir.Sub(p.right())
	}
	if keys.held(hal.Key7) {
		dir.Y += quarkgl.One
	}
	if keys.held(hal.Key9) {
		dir.Y -= quarkgl.One
	}
	p.pos = p.pos.Add(dir.Mul(step))
	p.pos = clampPos(p.pos)
}

// clampPos keeps every axis of the camera within MaxWorldExtent of the world
// box [0, MaxWorldExtent]. The largest camera to geometry offset is then
// 2*MaxWorldExtent per axis, whose 3-axis diagonal still fits a Scalar.
func clampPos(v quarkgl.Vec3) quarkgl.Vec3 {
	lo := quarkgl.ScalarFromInt(-vox.MaxWorldExtent)
	hi := quarkgl.ScalarFromInt(2 * vox.MaxWorldExtent)
	c := func(s quarkgl.Scalar) quarkgl.Scalar { return min(max(s, lo), hi) }
	return quarkgl.Vec3{X: c(v.X), Y: c(v.Y), Z: c(v.Z)}
}

// view returns the world to camera transform.
func (p *player) view() quarkgl.Mat4 {
	full := quarkgl.ScalarFromInt(360)
	rot := quarkgl.Mat4Mul(quarkgl.Mat4RotateX(full-p.pitch), quarkgl.Mat4RotateY(full-p.yaw))
	return quarkgl.Mat4Mul(rot, quarkgl.Mat4Translate(quarkgl.Vec3{X: -p.pos.X, Y: -p.pos.Y, Z: -p.pos.Z}))
}

// cell returns the block coordinates the camera is in.
func (p *player) cell() vox.Coord { return vox.BlockCoord(p.pos) }
