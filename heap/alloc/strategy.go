package alloc

import (
	"fmt"
	"strings"
)

// Strategy selects an allocator implementation.
type Strategy uint8

const (
	StrategyFixedSizeBlock Strategy = iota
	StrategyLinkedList
	StrategyBump
	StrategyDummy
)

var strategyNames = map[Strategy]string{
	StrategyFixedSizeBlock: "fixed-size-block",
	StrategyLinkedList:     "linked-list",
	StrategyBump:           "bump",
	StrategyDummy:          "dummy",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{StrategyFixedSizeBlock, StrategyLinkedList, StrategyBump, StrategyDummy}
}

// ParseStrategy maps a name such as "linked-list" to its Strategy.
// Matching is case-insensitive; "_" is accepted in place of "-".
func ParseStrategy(name string) (Strategy, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for s, n := range strategyNames {
		if n == norm {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// New constructs an uninitialized allocator for s. blockSizes only applies to
// StrategyFixedSizeBlock (nil for DefaultBlockSizes).
func New(s Strategy, blockSizes *BlockSizeConfig) (Allocator, error) {
	switch s {
	case StrategyFixedSizeBlock:
		fb, err := NewFixedSizeBlock(blockSizes)
		if err != nil {
			return nil, err
		}
		return fb, nil
	case StrategyLinkedList:
		return NewLinkedList(), nil
	case StrategyBump:
		return NewBump(), nil
	case StrategyDummy:
		return Dummy{}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
	}
}
