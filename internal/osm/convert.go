package osm

import "github.com/woozymasta/osmbox/internal/geo"

// ConvertTo projects the node position from geographic degrees to the
// planar space of p, in place.
func (n *Node) ConvertTo(p geo.Projection) {
	p.Forward(&n.Pos)
}

// RevertFrom recovers geographic degrees from the planar space of p.
func (n *Node) RevertFrom(p geo.Projection) {
	p.Inverse(&n.Pos)
}

// ConvertTo projects every node in the dataset. Ways reference nodes by id
// and carry no coordinates of their own, so they are left untouched, as is
// the dataset metadata.
func (d *Data) ConvertTo(p geo.Projection) {
	for _, node := range d.Nodes {
		node.ConvertTo(p)
	}
}

// RevertFrom undoes ConvertTo for every node in the dataset.
func (d *Data) RevertFrom(p geo.Projection) {
	for _, node := range d.Nodes {
		node.RevertFrom(p)
	}
}
