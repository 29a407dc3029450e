// Package runtime holds the tree-walking evaluator's runtime value model
// and lexical environments: the tagged Value union, shared mutable Array and
// Instance types, the Callable capability set (Function and Class), and
// Environment frames. This mirrors the teacher interpreter's split of a
// tagged Value{Tag, Data} carrier (see _examples/daios-ai-msg/interpreter.go)
// from its Env chain, generalized to this language's smaller value set.
package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Tag is the discriminant of Value.
type Tag int

const (
	TagNull Tag = iota
	TagNumber
	TagBoolean
	TagString
	TagArray
	TagCallable
	TagInstance
)

// Value is the universal runtime carrier. Numbers unify integer and
// floating literals as one numeric kind (float64). Arrays, Callables, and
// Instances carry reference semantics through their pointer/interface Data;
// Null, Number, Boolean, and String have value semantics.
type Value struct {
	Tag  Tag
	Data interface{}
}

// Null is the singleton null value.
var Null = Value{Tag: TagNull}

func Number(f float64) Value    { return Value{Tag: TagNumber, Data: f} }
func Boolean(b bool) Value      { return Value{Tag: TagBoolean, Data: b} }
func String(s string) Value     { return Value{Tag: TagString, Data: s} }
func ArrayVal(a *Array) Value   { return Value{Tag: TagArray, Data: a} }
func CallableVal(c Callable) Value { return Value{Tag: TagCallable, Data: c} }
func InstanceVal(i *Instance) Value { return Value{Tag: TagInstance, Data: i} }

// Array is a shared, mutable sequence of Value. Two Values referencing the
// same *Array observe each other's mutations.
type Array struct {
	Elements []Value
}

// Truthy implements the truthiness table from spec.md §4.4: Null is false;
// Boolean is itself; Number is false iff exactly zero; String is false iff
// empty; Array/Callable/Instance are always true.
func (v Value) Truthy() bool {
	switch v.Tag {
	case TagNull:
		return false
	case TagBoolean:
		return v.Data.(bool)
	case TagNumber:
		return v.Data.(float64) != 0
	case TagString:
		return v.Data.(string) != ""
	default:
		return true
	}
}

// Equals implements == semantics: deep value equality within the same tag,
// false across different tags. Arrays, instances, and callables compare by
// identity (pointer/interface equality), not structurally.
func (v Value) Equals(other Value) bool {
	if v.Tag != other.Tag {
		return false
	}
	switch v.Tag {
	case TagNull:
		return true
	case TagNumber:
		return v.Data.(float64) == other.Data.(float64)
	case TagBoolean:
		return v.Data.(bool) == other.Data.(bool)
	case TagString:
		return v.Data.(string) == other.Data.(string)
	case TagArray:
		return v.Data.(*Array) == other.Data.(*Array)
	case TagInstance:
		return v.Data.(*Instance) == other.Data.(*Instance)
	case TagCallable:
		return v.Data.(Callable) == other.Data.(Callable)
	default:
		return false
	}
}

// Display renders v's display form, as printed by PRINT and embedded inside
// array display: Null -> "null"; Number -> decimal with no trailing
// fractional zeros; Boolean -> "true"/"false"; String -> raw content;
// Array -> "[e1, e2, ...]"; Callable -> "<fn name>"/"<class name>";
// Instance -> "<ClassName instance>".
func (v Value) Display() string {
	switch v.Tag {
	case TagNull:
		return "null"
	case TagNumber:
		return formatNumber(v.Data.(float64))
	case TagBoolean:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case TagString:
		return v.Data.(string)
	case TagArray:
		arr := v.Data.(*Array)
		parts := make([]string, len(arr.Elements))
		for i, el := range arr.Elements {
			parts[i] = el.Display()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TagCallable:
		return v.Data.(Callable).DisplayName()
	case TagInstance:
		return "<" + v.Data.(*Instance).Class.Name + " instance>"
	default:
		return "<unknown>"
	}
}

func formatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		// Division-by-zero is rejected by the evaluator, so these arise
		// only from arithmetic overflow (e.g. multiplying two very large
		// numbers) or from a host embedding constructing Values directly.
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
