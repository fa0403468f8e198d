package geometry

import (
	"cmp"
	"math"
	"slices"

	"github.com/akmonengine/geokernel"
	"github.com/akmonengine/geokernel/device"
	"github.com/akmonengine/geokernel/logging"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// CellKey - integer coordinates of a voxel in the grid
type CellKey struct {
	X, Y, Z int32
}

// Voxel is an occupied grid cell.
type Voxel struct {
	Key   CellKey
	Color mgl32.Vec3
}

// VoxelGrid is a sparse set of cubic voxels of side VoxelSize. Voxel (0, 0, 0)
// spans [Origin, Origin + VoxelSize) on every axis.
type VoxelGrid struct {
	// Context runs the reductions. nil means device.Default().
	Context device.Context

	Origin    mgl32.Vec3
	VoxelSize float32

	voxels map[CellKey]Voxel
	err    error
}

func NewVoxelGrid(origin mgl32.Vec3, voxelSize float32) (*VoxelGrid, error) {
	if !(voxelSize > 0) {
		return nil, errors.Wrapf(geokernel.ErrInvalidArgument, "voxel size %v", voxelSize)
	}
	return &VoxelGrid{
		Origin:    origin,
		VoxelSize: voxelSize,
		voxels:    make(map[CellKey]Voxel),
	}, nil
}

// CreateVoxelGridFromPointCloud voxelizes pc. The grid origin sits half a
// voxel below the point cloud min bound; voxel colors are the mean color of
// their points when pc has colors.
func CreateVoxelGridFromPointCloud(pc *PointCloud, voxelSize float32) (*VoxelGrid, error) {
	vg, err := NewVoxelGrid(mgl32.Vec3{}, voxelSize)
	if err != nil {
		return nil, err
	}
	vg.Context = pc.Context
	ctx := pc.context()
	half := voxelSize / 2
	vg.Origin = geokernel.ComputeMinBoundOn(ctx, pc.Points).Wait().Sub(mgl32.Vec3{half, half, half})

	keys, err := device.NewBuffer[[3]int32](pc.Points.Device(), 0)
	if err != nil {
		return nil, err
	}
	if err := device.Map(ctx, pc.Points, keys, func(p mgl32.Vec3) [3]int32 {
		k := vg.worldToCell(p)
		return [3]int32{k.X, k.Y, k.Z}
	}); err != nil {
		return nil, err
	}
	if err := ctx.Synchronize(); err != nil {
		return nil, err
	}

	var colors []mgl32.Vec3
	if pc.HasColors() {
		colors = pc.Colors.CopyToHost()
	}
	type colorSum struct {
		sum mgl32.Vec3
		n   float32
	}
	sums := make(map[CellKey]colorSum)
	for i, k := range keys.CopyToHost() {
		key := CellKey{k[0], k[1], k[2]}
		s := sums[key]
		if colors != nil {
			s.sum = s.sum.Add(colors[i])
		}
		s.n++
		sums[key] = s
	}
	for key, s := range sums {
		vg.voxels[key] = Voxel{Key: key, Color: s.sum.Mul(1 / s.n)}
	}
	return vg, nil
}

// worldToCell - converts a world position to voxel coordinates
func (vg *VoxelGrid) worldToCell(pos mgl32.Vec3) CellKey {
	rel := pos.Sub(vg.Origin)
	return CellKey{
		X: int32(math.Floor(float64(rel.X() / vg.VoxelSize))),
		Y: int32(math.Floor(float64(rel.Y() / vg.VoxelSize))),
		Z: int32(math.Floor(float64(rel.Z() / vg.VoxelSize))),
	}
}

// GetVoxelCenter returns the world position of the center of key.
func (vg *VoxelGrid) GetVoxelCenter(key CellKey) mgl32.Vec3 {
	k := mgl32.Vec3{float32(key.X) + 0.5, float32(key.Y) + 0.5, float32(key.Z) + 0.5}
	return vg.Origin.Add(k.Mul(vg.VoxelSize))
}

// AddVoxel sets the voxel at v.Key, replacing any previous one.
func (vg *VoxelGrid) AddVoxel(v Voxel) {
	vg.voxels[v.Key] = v
}

// HasVoxelAt reports whether the voxel containing p is occupied.
func (vg *VoxelGrid) HasVoxelAt(p mgl32.Vec3) bool {
	_, ok := vg.voxels[vg.worldToCell(p)]
	return ok
}

func (vg *VoxelGrid) Len() int {
	return len(vg.voxels)
}

// Voxels returns the occupied voxels ordered by key.
func (vg *VoxelGrid) Voxels() []Voxel {
	out := make([]Voxel, 0, len(vg.voxels))
	for _, v := range vg.voxels {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b Voxel) int {
		return cmp.Or(cmp.Compare(a.Key.X, b.Key.X), cmp.Compare(a.Key.Y, b.Key.Y), cmp.Compare(a.Key.Z, b.Key.Z))
	})
	return out
}

func (vg *VoxelGrid) context() device.Context {
	if vg.Context == nil {
		return device.Default()
	}
	return vg.Context
}

// centers uploads the voxel centers for the engine reductions.
func (vg *VoxelGrid) centers() *device.Buffer[mgl32.Vec3] {
	host := make([]mgl32.Vec3, 0, len(vg.voxels))
	for key := range vg.voxels {
		host = append(host, vg.GetVoxelCenter(key))
	}
	buf, err := device.FromHost(vg.context().Device(), host)
	if err != nil {
		// The voxels already live in host memory, only a device limit can refuse them.
		vg.fail(err)
		buf, _ = device.FromHost[mgl32.Vec3](vg.context().Device(), nil)
	}
	return buf
}

func (vg *VoxelGrid) fail(err error) {
	if vg.err == nil {
		vg.err = err
	}
}

func (vg *VoxelGrid) Err() error {
	return vg.err
}

func (vg *VoxelGrid) Type() GeometryType {
	return GeometryTypeVoxelGrid
}

func (vg *VoxelGrid) Clear() Geometry3D {
	clear(vg.voxels)
	return vg
}

func (vg *VoxelGrid) IsEmpty() bool {
	return len(vg.voxels) == 0
}

// GetMinBound returns the lowest corner of the occupied voxels, or Origin
// when there are none.
func (vg *VoxelGrid) GetMinBound() mgl32.Vec3 {
	if vg.IsEmpty() {
		return vg.Origin
	}
	half := vg.VoxelSize / 2
	return geokernel.ComputeMinBoundOn(vg.context(), vg.centers()).Wait().Sub(mgl32.Vec3{half, half, half})
}

// GetMaxBound returns the highest corner of the occupied voxels, or Origin
// when there are none.
func (vg *VoxelGrid) GetMaxBound() mgl32.Vec3 {
	if vg.IsEmpty() {
		return vg.Origin
	}
	half := vg.VoxelSize / 2
	return geokernel.ComputeMaxBoundOn(vg.context(), vg.centers()).Wait().Add(mgl32.Vec3{half, half, half})
}

// GetCenter returns the mean of the voxel centers.
func (vg *VoxelGrid) GetCenter() mgl32.Vec3 {
	return geokernel.ComputeCenterOn(vg.context(), vg.centers()).Wait()
}

func (vg *VoxelGrid) GetAxisAlignedBoundingBox() AxisAlignedBoundingBox {
	return AxisAlignedBoundingBox{Min: vg.GetMinBound(), Max: vg.GetMaxBound()}
}

// Translate moves the grid origin.
func (vg *VoxelGrid) Translate(t mgl32.Vec3, relative bool) Geometry3D {
	if vg.err != nil {
		return vg
	}
	if relative {
		vg.Origin = vg.Origin.Add(t)
	} else {
		vg.Origin = vg.Origin.Add(t.Sub(vg.GetCenter()))
	}
	return vg
}

// Scale resizes the voxels and moves the origin so every voxel center scales
// about the grid center, or about the world origin.
func (vg *VoxelGrid) Scale(s float32, center bool) Geometry3D {
	if vg.err != nil {
		return vg
	}
	if !(s > 0) {
		vg.fail(errors.Wrapf(geokernel.ErrInvalidArgument, "voxel grid scale %v", s))
		return vg
	}
	var pivot mgl32.Vec3
	if center {
		pivot = vg.GetCenter()
	}
	vg.Origin = vg.Origin.Sub(pivot).Mul(s).Add(pivot)
	vg.VoxelSize *= s
	return vg
}

func (vg *VoxelGrid) unsupported(op string) Geometry3D {
	if vg.err == nil {
		vg.err = errors.Wrapf(ErrUnsupported, "%s of a voxel grid", op)
		logging.Logger().Warnw("unsupported geometry operation", "geometry", vg.Type().String(), "operation", op)
	}
	return vg
}

func (vg *VoxelGrid) Transform(m mgl32.Mat4) Geometry3D {
	return vg.unsupported("transform")
}

func (vg *VoxelGrid) Rotate(r mgl32.Mat3, center bool) Geometry3D {
	return vg.unsupported("rotation")
}
