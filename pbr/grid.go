// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbr

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"github.com/gloamlab/gloam/textures"
)

// Grid is a segmented rectangle in the XY plane facing +Z,
// with per-vertex normals and texture coordinates. Its vertices can be
// displaced by a height map, which needs enough segments to show.
type Grid struct {
	Width  float32
	Height float32
	SegX   int
	SegY   int

	Vertex []math32.Vector3
	Normal []math32.Vector3
	UV     []math32.Vector2
	Index  []uint32
}

// PlaneGeometry returns a width x height grid centered on the origin with
// segX x segY quads. UV (0, 1) is the top-left corner.
func PlaneGeometry(width, height float32, segX, segY int) *Grid {
	segX = max(segX, 1)
	segY = max(segY, 1)
	g := &Grid{Width: width, Height: height, SegX: segX, SegY: segY}
	nx, ny := segX+1, segY+1
	g.Vertex = make([]math32.Vector3, 0, nx*ny)
	g.Normal = make([]math32.Vector3, 0, nx*ny)
	g.UV = make([]math32.Vector2, 0, nx*ny)
	sw := width / float32(segX)
	sh := height / float32(segY)
	for iy := range ny {
		y := height/2 - float32(iy)*sh
		for ix := range nx {
			x := float32(ix)*sw - width/2
			g.Vertex = append(g.Vertex, math32.Vec3(x, y, 0))
			g.Normal = append(g.Normal, math32.Vec3(0, 0, 1))
			g.UV = append(g.UV, math32.Vec2(float32(ix)/float32(segX), 1-float32(iy)/float32(segY)))
		}
	}
	g.Index = make([]uint32, 0, segX*segY*6)
	for iy := range segY {
		for ix := range segX {
			a := uint32(ix + nx*iy)
			b := uint32(ix + nx*(iy+1))
			c := uint32(ix + 1 + nx*(iy+1))
			d := uint32(ix + 1 + nx*iy)
			g.Index = append(g.Index, a, b, d, b, c, d)
		}
	}
	return g
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	c.Vertex = append([]math32.Vector3(nil), g.Vertex...)
	c.Normal = append([]math32.Vector3(nil), g.Normal...)
	c.UV = append([]math32.Vector2(nil), g.UV...)
	c.Index = append([]uint32(nil), g.Index...)
	return &c
}

// Displaced returns a copy of the grid with every vertex moved along its
// normal by h*scale + bias, where h is the red channel of the height map
// at the vertex UV (0 if s is nil). The copy's normals are recomputed.
// g itself is unchanged, so it can be re-displaced with new parameters.
func (g *Grid) Displaced(s *textures.Sampler, scale, bias float32) *Grid {
	d := g.Clone()
	for i, uv := range d.UV {
		var h float32
		if s != nil {
			h = s.Value(uv.X, uv.Y)[Displacement.Channel()]
		}
		d.Vertex[i] = d.Vertex[i].Add(g.Normal[i].MulScalar(h*scale + bias))
	}
	d.ComputeNormals()
	return d
}

// ComputeNormals recomputes smooth vertex normals from the triangles.
func (g *Grid) ComputeNormals() {
	acc := make([]math32.Vector3, len(g.Vertex))
	for i := 0; i+2 < len(g.Index); i += 3 {
		a, b, c := g.Index[i], g.Index[i+1], g.Index[i+2]
		e1 := g.Vertex[b].Sub(g.Vertex[a])
		e2 := g.Vertex[c].Sub(g.Vertex[a])
		n := e1.Cross(e2)
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i, n := range acc {
		if n.Length() > 0 {
			g.Normal[i] = n.Normal()
		}
	}
}

// Mesh returns the grid as a named xyz mesh.
func (g *Grid) Mesh(name string) *xyz.GenMesh {
	ms := &xyz.GenMesh{}
	ms.Name = name
	ms.Vertex = make(math32.ArrayF32, 0, len(g.Vertex)*3)
	ms.Normal = make(math32.ArrayF32, 0, len(g.Normal)*3)
	ms.TexCoord = make(math32.ArrayF32, 0, len(g.UV)*2)
	for i, v := range g.Vertex {
		n := g.Normal[i]
		ms.Vertex = append(ms.Vertex, v.X, v.Y, v.Z)
		ms.Normal = append(ms.Normal, n.X, n.Y, n.Z)
		ms.TexCoord = append(ms.TexCoord, g.UV[i].X, g.UV[i].Y)
	}
	ms.Index = append(math32.ArrayU32(nil), g.Index...)
	ms.MeshSize()
	return ms
}
