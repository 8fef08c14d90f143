// file: treekit/codec/tree.go
package codec

import (
	"fmt"

	"github.com/rskv-p/treekit/bintree"
	"github.com/rskv-p/treekit/tree"
)

// ----------------------------------------------------
// Wire documents
// ----------------------------------------------------

// TreeDoc is the JSON form of a general tree node. A null entry in
// Children is an absent slot.
type TreeDoc[T any] struct {
	Value    T             `json:"value"`
	Children []*TreeDoc[T] `json:"children,omitempty"`
}

// BinaryDoc is the JSON form of a binary tree node.
type BinaryDoc[T any] struct {
	Value T             `json:"value"`
	Left  *BinaryDoc[T] `json:"left,omitempty"`
	Right *BinaryDoc[T] `json:"right,omitempty"`
}

// ----------------------------------------------------
// General trees
// ----------------------------------------------------

// TreeToDoc converts t to its wire document.
func TreeToDoc[T any](t *tree.Node[T]) *TreeDoc[T] {
	if t == nil {
		return nil
	}
	doc := &TreeDoc[T]{Value: t.Value}
	if len(t.Children) > 0 {
		doc.Children = make([]*TreeDoc[T], len(t.Children))
		for i, c := range t.Children {
			doc.Children[i] = TreeToDoc(c)
		}
	}
	return doc
}

// DocToTree converts a wire document back to a tree.
func DocToTree[T any](doc *TreeDoc[T]) *tree.Node[T] {
	if doc == nil {
		return nil
	}
	n := tree.New(doc.Value)
	for _, c := range doc.Children {
		n.Children = append(n.Children, DocToTree(c))
	}
	return n
}

// EncodeTree encodes t as JSON. A nil tree encodes as null.
func EncodeTree[T any](t *tree.Node[T]) ([]byte, error) {
	data, err := Marshal(TreeToDoc(t))
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return data, nil
}

// DecodeTree decodes a tree encoded by EncodeTree.
func DecodeTree[T any](data []byte) (*tree.Node[T], error) {
	var doc *TreeDoc[T]
	if err := Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return DocToTree(doc), nil
}

// ----------------------------------------------------
// Binary trees
// ----------------------------------------------------

// BinaryToDoc converts t to its wire document.
func BinaryToDoc[T any](t *bintree.Node[T]) *BinaryDoc[T] {
	if t == nil {
		return nil
	}
	return &BinaryDoc[T]{
		Value: t.Value,
		Left:  BinaryToDoc(t.Left),
		Right: BinaryToDoc(t.Right),
	}
}

// DocToBinary converts a wire document back to a binary tree.
func DocToBinary[T any](doc *BinaryDoc[T]) *bintree.Node[T] {
	if doc == nil {
		return nil
	}
	return bintree.New(doc.Value, DocToBinary(doc.Left), DocToBinary(doc.Right))
}

// EncodeBinary encodes t as JSON. A nil tree encodes as null.
func EncodeBinary[T any](t *bintree.Node[T]) ([]byte, error) {
	data, err := Marshal(BinaryToDoc(t))
	if err != nil {
		return nil, fmt.Errorf("encode binary tree: %w", err)
	}
	return data, nil
}

// DecodeBinary decodes a binary tree encoded by EncodeBinary.
func DecodeBinary[T any](data []byte) (*bintree.Node[T], error) {
	var doc *BinaryDoc[T]
	if err := Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode binary tree: %w", err)
	}
	return DocToBinary(doc), nil
}
