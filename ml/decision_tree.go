package ml

import (
	"errors"
	"fmt"
)

type DecisionTree struct {
	classes []string
	nodes   []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

func newDecisionTree(a artifact) (*DecisionTree, error) {
	if len(a.Nodes) == 0 {
		return nil, errors.New("decision tree has no nodes")
	}
	for i, node := range a.Nodes {
		if node.IsLeaf {
			if node.ClassLabel < 0 || node.ClassLabel >= len(a.Classes) {
				return nil, fmt.Errorf("node %d: class_label %d out of range", i, node.ClassLabel)
			}
			continue
		}
		if node.FeatureIdx < 0 {
			return nil, fmt.Errorf("node %d: negative feature_idx", i)
		}
		// children always follow their parent, which also rules out cycles
		if node.LeftChild <= i || node.LeftChild >= len(a.Nodes) ||
			node.RightChild <= i || node.RightChild >= len(a.Nodes) {
			return nil, fmt.Errorf("node %d: invalid children %d/%d", i, node.LeftChild, node.RightChild)
		}
	}
	return &DecisionTree{classes: a.Classes, nodes: a.Nodes}, nil
}

func (dt *DecisionTree) Predict(rows [][]float64) ([]string, error) {
	labels := make([]string, 0, len(rows))
	for i, row := range rows {
		label, err := dt.predictRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		labels = append(labels, label)
	}
	return labels, nil
}

func (dt *DecisionTree) predictRow(features []float64) (string, error) {
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return dt.classes[node.ClassLabel], nil
		}
		if node.FeatureIdx >= len(features) {
			return "", errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

// Classes returns the labels the tree can emit.
func (t *DecisionTree) Classes() []string {
	return append([]string(nil), t.classes...)
}
