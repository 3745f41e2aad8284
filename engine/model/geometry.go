package model

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Box generates an axis-aligned box centered on the origin with 4 vertices per
// face so each face carries its own normal.
//
// Parameters:
//   - width, height, depth: extents along X, Y and Z
//
// Returns:
//   - []GPUVertex: 24 vertices
//   - []uint32: 36 indices
func Box(width, height, depth float32) ([]GPUVertex, []uint32) {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	// each face is {normal, u, v} with u x v == normal
	faces := [6][3]mgl32.Vec3{
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(len(vertices))
		for _, c := range corners {
			unit := n.Add(u.Mul(c[0])).Add(v.Mul(c[1]))
			p := mgl32.Vec3{unit[0] * half[0], unit[1] * half[1], unit[2] * half[2]}
			vertices = append(vertices, GPUVertex{Position: p, Normal: n})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

// Plane generates a single quad on the XY plane facing +Z.
//
// Parameters:
//   - width, height: extents along X and Y
//
// Returns:
//   - []GPUVertex: 4 vertices
//   - []uint32: 6 indices
func Plane(width, height float32) ([]GPUVertex, []uint32) {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	vertices := []GPUVertex{
		{Position: [3]float32{-hw, -hh, 0}, Normal: n},
		{Position: [3]float32{hw, -hh, 0}, Normal: n},
		{Position: [3]float32{hw, hh, 0}, Normal: n},
		{Position: [3]float32{-hw, hh, 0}, Normal: n},
	}
	return vertices, []uint32{0, 1, 2, 0, 2, 3}
}

// Sphere generates a UV sphere with smooth normals. Rows run from the north
// pole (+Y) to the south pole.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: segments around the equator (>= 3)
//   - heightSegments: segments from pole to pole (>= 2)
//
// Returns:
//   - []GPUVertex: (widthSegments+1)*(heightSegments+1) vertices
//   - []uint32: triangle indices, degenerate pole triangles omitted
func Sphere(radius float32, widthSegments, heightSegments int) ([]GPUVertex, []uint32) {
	vertices := make([]GPUVertex, 0, (widthSegments+1)*(heightSegments+1))
	grid := make([][]uint32, heightSegments+1)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			n := [3]float32{
				float32(-math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)),
				float32(math.Cos(v * math.Pi)),
				float32(math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)),
			}
			row[ix] = uint32(len(vertices))
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
			})
		}
		grid[iy] = row
	}

	indices := make([]uint32, 0, widthSegments*heightSegments*6)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return vertices, indices
}

// Cylinder generates a capped cylinder (or truncated cone) centered on the origin
// along Y. A zero radius omits that cap.
//
// Parameters:
//   - radiusTop, radiusBottom: cap radii
//   - height: extent along Y
//   - radialSegments: segments around the circumference (>= 3)
//   - heightSegments: rows along the height (>= 1)
//
// Returns:
//   - []GPUVertex: side and cap vertices
//   - []uint32: triangle indices
func Cylinder(radiusTop, radiusBottom, height float32, radialSegments, heightSegments int) ([]GPUVertex, []uint32) {
	halfHeight := height / 2
	slope := (radiusBottom - radiusTop) / height

	var (
		vertices []GPUVertex
		indices  []uint32
	)

	grid := make([][]uint32, heightSegments+1)
	for y := 0; y <= heightSegments; y++ {
		v := float32(y) / float32(heightSegments)
		r := v*(radiusBottom-radiusTop) + radiusTop
		row := make([]uint32, radialSegments+1)
		for x := 0; x <= radialSegments; x++ {
			theta := float64(x) / float64(radialSegments) * 2 * math.Pi
			sin, cos := float32(math.Sin(theta)), float32(math.Cos(theta))
			n := mgl32.Vec3{sin, slope, cos}.Normalize()
			row[x] = uint32(len(vertices))
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{r * sin, -v*height + halfHeight, r * cos},
				Normal:   n,
			})
		}
		grid[y] = row
	}
	for x := 0; x < radialSegments; x++ {
		for y := 0; y < heightSegments; y++ {
			a := grid[y][x]
			b := grid[y+1][x]
			c := grid[y+1][x+1]
			d := grid[y][x+1]
			indices = append(indices, a, b, d, b, c, d)
		}
	}

	addCap := func(top bool) {
		r, sign := radiusBottom, float32(-1)
		if top {
			r, sign = radiusTop, 1
		}
		if r <= 0 {
			return
		}
		n := [3]float32{0, sign, 0}
		center := uint32(len(vertices))
		vertices = append(vertices, GPUVertex{Position: [3]float32{0, halfHeight * sign, 0}, Normal: n})
		ring := uint32(len(vertices))
		for x := 0; x <= radialSegments; x++ {
			theta := float64(x) / float64(radialSegments) * 2 * math.Pi
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{r * float32(math.Sin(theta)), halfHeight * sign, r * float32(math.Cos(theta))},
				Normal:   n,
			})
		}
		for x := uint32(0); x < uint32(radialSegments); x++ {
			i := ring + x
			if top {
				indices = append(indices, i, i+1, center)
			} else {
				indices = append(indices, i+1, i, center)
			}
		}
	}
	addCap(true)
	addCap(false)

	return vertices, indices
}

// TorusKnot generates a (p, q) torus knot tube with smooth normals.
//
// Parameters:
//   - radius: radius of the underlying torus
//   - tube: radius of the tube
//   - tubularSegments: segments along the knot curve (>= 3)
//   - radialSegments: segments around the tube (>= 3)
//   - p: windings around the torus axis
//   - q: windings around the torus interior
//
// Returns:
//   - []GPUVertex: (tubularSegments+1)*(radialSegments+1) vertices
//   - []uint32: triangle indices
func TorusKnot(radius, tube float32, tubularSegments, radialSegments, p, q int) ([]GPUVertex, []uint32) {
	curve := func(u float64) mgl32.Vec3 {
		quOverP := float64(q) / float64(p) * u
		cs := math.Cos(quOverP)
		r := float64(radius)
		return mgl32.Vec3{
			float32(r * (2 + cs) * 0.5 * math.Cos(u)),
			float32(r * (2 + cs) * math.Sin(u) * 0.5),
			float32(r * math.Sin(quOverP) * 0.5),
		}
	}

	vertices := make([]GPUVertex, 0, (tubularSegments+1)*(radialSegments+1))
	for i := 0; i <= tubularSegments; i++ {
		u := float64(i) / float64(tubularSegments) * float64(p) * 2 * math.Pi
		p1 := curve(u)
		p2 := curve(u + 0.01)

		t := p2.Sub(p1)
		n := p2.Add(p1)
		b := t.Cross(n)
		n = b.Cross(t)
		b = b.Normalize()
		n = n.Normalize()

		for j := 0; j <= radialSegments; j++ {
			v := float64(j) / float64(radialSegments) * 2 * math.Pi
			cx := float32(-float64(tube) * math.Cos(v))
			cy := float32(float64(tube) * math.Sin(v))
			pos := p1.Add(n.Mul(cx)).Add(b.Mul(cy))
			vertices = append(vertices, GPUVertex{Position: pos, Normal: pos.Sub(p1).Normalize()})
		}
	}

	stride := uint32(radialSegments + 1)
	indices := make([]uint32, 0, tubularSegments*radialSegments*6)
	for j := uint32(1); j <= uint32(tubularSegments); j++ {
		for i := uint32(1); i <= uint32(radialSegments); i++ {
			a := stride*(j-1) + (i - 1)
			b := stride*j + (i - 1)
			c := stride*j + i
			d := stride*(j-1) + i
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return vertices, indices
}

var (
	icosahedronCorners = func() []mgl32.Vec3 {
		t := float32((1 + math.Sqrt(5)) / 2)
		return []mgl32.Vec3{
			{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
			{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
			{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
		}
	}()

	icosahedronFaces = [][]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// Icosahedron generates a flat-shaded regular icosahedron whose vertices lie on
// a sphere of the given radius.
//
// Parameters:
//   - radius: circumscribed radius
//
// Returns:
//   - []GPUVertex: 60 vertices (3 per face)
//   - []uint32: 60 indices
func Icosahedron(radius float32) ([]GPUVertex, []uint32) {
	return polyhedron(icosahedronCorners, icosahedronFaces, radius)
}

// Dodecahedron generates a flat-shaded regular dodecahedron whose vertices lie
// on a sphere of the given radius. It is built as the dual of the icosahedron:
// one corner per icosahedron face, one pentagon per icosahedron vertex.
//
// Parameters:
//   - radius: circumscribed radius
//
// Returns:
//   - []GPUVertex: 60 vertices (5 per face)
//   - []uint32: 108 indices (3 triangles per face)
func Dodecahedron(radius float32) ([]GPUVertex, []uint32) {
	corners := make([]mgl32.Vec3, len(icosahedronFaces))
	for i, f := range icosahedronFaces {
		c := icosahedronCorners[f[0]].Add(icosahedronCorners[f[1]]).Add(icosahedronCorners[f[2]])
		corners[i] = c.Normalize()
	}

	faces := make([][]int, len(icosahedronCorners))
	for vi, v := range icosahedronCorners {
		axis := v.Normalize()
		var ring []int
		for fi, f := range icosahedronFaces {
			if f[0] == vi || f[1] == vi || f[2] == vi {
				ring = append(ring, fi)
			}
		}
		ref := corners[ring[0]]
		e1 := ref.Sub(axis.Mul(axis.Dot(ref))).Normalize()
		e2 := axis.Cross(e1)
		sort.Slice(ring, func(i, j int) bool {
			ci, cj := corners[ring[i]], corners[ring[j]]
			ai := math.Atan2(float64(ci.Dot(e2)), float64(ci.Dot(e1)))
			aj := math.Atan2(float64(cj.Dot(e2)), float64(cj.Dot(e1)))
			return ai < aj
		})
		faces[vi] = ring
	}
	return polyhedron(corners, faces, radius)
}

// polyhedron emits flat-shaded, fan-triangulated faces of a convex polyhedron
// centered on the origin. Corners are projected onto the sphere of the given
// radius and every face is wound counter-clockwise when seen from outside.
func polyhedron(corners []mgl32.Vec3, faces [][]int, radius float32) ([]GPUVertex, []uint32) {
	var (
		vertices []GPUVertex
		indices  []uint32
	)
	for _, face := range faces {
		pts := make([]mgl32.Vec3, len(face))
		var centroid mgl32.Vec3
		for i, ci := range face {
			pts[i] = corners[ci].Normalize().Mul(radius)
			centroid = centroid.Add(pts[i])
		}
		n := pts[1].Sub(pts[0]).Cross(pts[2].Sub(pts[0])).Normalize()
		if n.Dot(centroid) < 0 {
			for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
				pts[i], pts[j] = pts[j], pts[i]
			}
			n = n.Mul(-1)
		}
		base := uint32(len(vertices))
		for _, p := range pts {
			vertices = append(vertices, GPUVertex{Position: p, Normal: n})
		}
		for i := uint32(1); i+1 < uint32(len(pts)); i++ {
			indices = append(indices, base, base+i, base+i+1)
		}
	}
	return vertices, indices
}
