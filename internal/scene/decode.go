package scene

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
)

// DracoExtension marks Draco geometry compression on a glTF primitive.
const DracoExtension = "KHR_draco_mesh_compression"

// Decode reads a glTF JSON or binary GLB asset. Mesh bounds come from the
// POSITION accessor min/max, which glTF requires and which describe the
// decompressed geometry even for Draco primitives.
func Decode(r io.Reader) (*Scene, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrAssetLoad, err)
	}
	return FromDocument(doc)
}

// FromDocument converts a decoded glTF document into a Scene. The default
// scene is used; without one, every node that is nobody's child is a root.
func FromDocument(doc *gltf.Document) (*Scene, error) {
	b := &builder{
		doc:       doc,
		materials: make([]*Material, len(doc.Materials)),
		built:     make(map[int]bool),
	}
	for i, m := range doc.Materials {
		b.materials[i] = convertMaterial(m)
	}

	roots, err := rootIndices(doc)
	if err != nil {
		return nil, err
	}

	s := New()
	for _, idx := range roots {
		if n := b.node(idx); n != nil {
			s.Roots = append(s.Roots, n)
		}
	}
	return s, nil
}

func rootIndices(doc *gltf.Document) ([]int, error) {
	if len(doc.Scenes) > 0 {
		si := 0
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			si = int(*doc.Scene)
		}
		out := make([]int, 0, len(doc.Scenes[si].Nodes))
		for _, n := range doc.Scenes[si].Nodes {
			out = append(out, int(n))
		}
		return out, nil
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, ErrNoScene)
	}
	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			child[int(c)] = true
		}
	}
	var out []int
	for i := range doc.Nodes {
		if !child[i] {
			out = append(out, i)
		}
	}
	return out, nil
}

type builder struct {
	doc       *gltf.Document
	materials []*Material
	built     map[int]bool
}

func (b *builder) node(idx int) *Node {
	if idx < 0 || idx >= len(b.doc.Nodes) || b.built[idx] {
		return nil
	}
	b.built[idx] = true

	src := b.doc.Nodes[idx]
	n := NewNode(src.Name)
	n.Local = localMatrix(src)
	if src.Mesh != nil {
		n.Mesh = b.mesh(int(*src.Mesh))
	}
	for _, c := range src.Children {
		if child := b.node(int(c)); child != nil {
			n.AddChild(child)
		}
	}
	return n
}

func (b *builder) mesh(idx int) *Mesh {
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil
	}
	m := &Mesh{Bounds: EmptyBox()}
	for _, p := range b.doc.Meshes[idx].Primitives {
		if ai, ok := p.Attributes["POSITION"]; ok && int(ai) < len(b.doc.Accessors) {
			acc := b.doc.Accessors[ai]
			if len(acc.Min) >= 3 && len(acc.Max) >= 3 {
				m.Bounds = m.Bounds.Union(NewBox(
					mgl64.Vec3{acc.Min[0], acc.Min[1], acc.Min[2]},
					mgl64.Vec3{acc.Max[0], acc.Max[1], acc.Max[2]},
				))
			}
		}
		if _, ok := p.Extensions[DracoExtension]; ok {
			m.Compressed = true
		}
		if m.Material == nil && p.Material != nil && int(*p.Material) < len(b.materials) {
			m.Material = b.materials[*p.Material]
		}
	}
	if m.Material == nil {
		m.Material = DefaultMaterial()
	}
	return m
}

func convertMaterial(src *gltf.Material) *Material {
	m := DefaultMaterial()
	m.Name = src.Name
	m.DoubleSided = src.DoubleSided
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		m.Color = pbr.BaseColorFactorOrDefault()
	}
	if src.AlphaMode == gltf.AlphaBlend {
		m.Transparent = true
		m.Opacity = m.Color[3]
		m.DepthWrite = false
	}
	return m
}

func localMatrix(n *gltf.Node) mgl64.Mat4 {
	if m := mgl64.Mat4(n.MatrixOrDefault()); m != mgl64.Ident4() {
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(q.Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}
