package models

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Record is one row keyed by column name. Iteration and JSON encoding
// follow insertion order, which is sheet column order.
type Record = orderedmap.OrderedMap[string, Value]

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return orderedmap.New[string, Value]()
}
