package voxel

import (
	"math"
	"testing"

	"sparkcraft/hal"
	"sparkcraft/sparkos/quarkgl"
	vox "sparkcraft/sparkos/voxel"
)

func TestPlayerLookClampsPitch(t *testing.T) {
	tests := []struct {
		name      string
		pitch, dy int
		wantPitch int
		yaw, dx   int
		wantYaw   int
	}{
		{name: "down clamps at 90", pitch: 80, dy: -30, wantPitch: 90},
		{name: "up clamps at 270", pitch: 280, dy: 30, wantPitch: 270},
		{name: "up through zero wraps", pitch: 10, dy: 30, wantPitch: 340},
		{name: "down through 360 wraps", pitch: 350, dy: -20, wantPitch: 10},
		{name: "yaw wraps forward", yaw: 350, dx: 20, wantYaw: 10},
		{name: "yaw wraps backward", yaw: 10, dx: -20, wantYaw: 350},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := player{pitch: quarkgl.ScalarFromInt(tt.pitch), yaw: quarkgl.ScalarFromInt(tt.yaw)}
			p.look(hal.TouchReport{Contact: true, XVel: tt.dx, YVel: tt.dy})
			if got := p.pitch; got != quarkgl.ScalarFromInt(tt.wantPitch) {
				t.Fatalf("pitch = %v, want %d", got.Float32(), tt.wantPitch)
			}
			if got := p.yaw; got != quarkgl.ScalarFromInt(tt.wantYaw) {
				t.Fatalf("yaw = %v, want %d", got.Float32(), tt.wantYaw)
			}
		})
	}
}

func TestPlayerMove(t *testing.T) {
	const step = moveSpeed * maxStepMs / hal.TickHz
	tests := []struct {
		name string
		key  hal.KeyCode
		want quarkgl.Vec3
	}{
		{name: "forward", key: hal.Key8, want: quarkgl.V3Int(0, 0, step)},
		{name: "back", key: hal.Key2, want: quarkgl.V3Int(0, 0, -step)},
		{name: "right", key: hal.Key6, want: quarkgl.V3Int(step, 0, 0)},
		{name: "left", key: hal.Key4, want: quarkgl.V3Int(-step, 0, 0)},
		{name: "up", key: hal.Key7, want: quarkgl.V3Int(0, step, 0)},
		{name: "down", key: hal.Key9, want: quarkgl.V3Int(0, -step, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var keys keyState
			keys.set(tt.key, true)
			var p player
			p.move(maxStepMs, &keys)
			if p.pos != tt.want {
				t.Fatalf("pos = %+v, want %+v", p.pos, tt.want)
			}
		})
	}
}

func TestPlayerMoveIdleOrZeroTime(t *testing.T) {
	p := newPlayer(4)
	start := p.pos

	var keys keyState
	p.move(500, &keys)
	if p.pos != start {
		t.Fatalf("pos after idle move = %+v, want %+v", p.pos, start)
	}
	keys.set(hal.Key8, true)
	p.move(0, &keys)
	if p.pos != start {
		t.Fatalf("pos after zero dt = %+v, want %+v", p.pos, start)
	}
}

func TestNewPlayerStartsInFrontOfFirstChunk(t *testing.T) {
	p := newPlayer(8)
	want := quarkgl.V3Int(vox.BlockSize*8, 0, -2*vox.BlockSize*8)
	if p.pos != want {
		t.Fatalf("newPlayer().pos = %+v, want %+v", p.pos, want)
	}
}

func TestPlayerViewLooksAlongForward(t *testing.T) {
	tests := []struct {
		name       string
		pitch, yaw int
		offset     quarkgl.Vec3
	}{
		{name: "straight ahead", offset: quarkgl.V3Int(0, 0, 100)},
		{name: "turned right", yaw: 90, offset: quarkgl.V3Int(100, 0, 0)},
		{name: "looking down", pitch: 90, offset: quarkgl.V3Int(0, -100, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := player{
				pos:   quarkgl.V3Int(40, 50, -60),
				pitch: quarkgl.ScalarFromInt(tt.pitch),
				yaw:   quarkgl.ScalarFromInt(tt.yaw),
			}
			got := quarkgl.Mat4MulV3(p.view(), p.pos.Add(tt.offset))
			want := quarkgl.V3Int(0, 0, 100)
			const tol = quarkgl.One / 16
			if (got.X-want.X).Abs() > tol || (got.Y-want.Y).Abs() > tol || (got.Z-want.Z).Abs() > tol {
				t.Fatalf("view() * target = (%v, %v, %v), want (0, 0, 100)", got.X.Float32(), got.Y.Float32(), got.Z.Float32())
			}
		})
	}
}

func TestPlayerCell(t *testing.T) {
	p := player{pos: quarkgl.V3Int(vox.BlockSize+1, -1, 2*vox.BlockSize)}
	if got, want := p.cell(), (vox.Coord{X: 1, Y: -1, Z: 2}); got != want {
		t.Fatalf("cell() = %+v, want %+v", got, want)
	}
}

func TestClampPosKeepsCameraSpaceInRange(t *testing.T) {
	const ext = vox.MaxWorldExtent
	tests := []struct {
		name       string
		pos        quarkgl.Vec3
		pitch, yaw int
		corner     quarkgl.Vec3
	}{
		{name: "below the world", pos: quarkgl.V3Int(-30000, -30000, -30000), pitch: 325, yaw: 45, corner: quarkgl.V3Int(ext, ext, ext)},
		{name: "above the world", pos: quarkgl.V3Int(30000, 30000, 30000), pitch: 35, yaw: 225, corner: quarkgl.V3Int(0, 0, 0)},
		{name: "mixed corner", pos: quarkgl.V3Int(-30000, 30000, 30000), pitch: 35, yaw: 135, corner: quarkgl.V3Int(ext, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := player{
				pos:   clampPos(tt.pos),
				pitch: quarkgl.ScalarFromInt(tt.pitch),
				yaw:   quarkgl.ScalarFromInt(tt.yaw),
			}
			d := tt.corner.Sub(p.pos)
			want := math.Sqrt(sq(d.X) + sq(d.Y) + sq(d.Z))
			if want < 2*ext {
				t.Fatalf("clamped pos %+v is not at the clamp corner", p.pos)
			}

			v := quarkgl.Mat4MulV3(p.view(), tt.corner)
			got := math.Sqrt(sq(v.X) + sq(v.Y) + sq(v.Z))
			if math.Abs(got-want) > want/200 {
				t.Fatalf("camera-space length = %.0f, want %.0f", got, want)
			}
		})
	}
}

func sq(s quarkgl.Scalar) float64 {
	f := float64(s.Float32())
	return f * f
}
