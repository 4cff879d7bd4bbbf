package values

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"time"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"golang.org/x/exp/slices"
)

const maxSourceDepth = 64

var reflectTypeType = reflect.TypeOf((*reflect.Type)(nil)).Elem() //nolint:gochecknoglobals

// Source renders any value as a short, JSON-like debug string for use in failure messages.
//
//	Source("a")                     // "a" (quoted)
//	Source(Undefined)               // undefined
//	Source(math.NaN())              // NaN
//	Source(time.UnixMilli(5))       // new Date(5)
//	Source(regexp.MustCompile("x")) // /x/
//	Source(map[string]int{"b": 2})  // {"b":2}
//	Source(errors.New("boom"))      // *errors.errorString("boom")
//
// Map keys are sorted, structs show only exported fields, and a value that refers back to
// one of its own containers is rendered as [Circular]. Source never panics.
func Source(value any) string {
	w := jwriter.NewWriter()
	s := sourceWriter{w: &w, seen: make(map[uintptr]bool)}
	s.write(value, 0)
	return string(w.Bytes())
}

type sourceWriter struct {
	w    *jwriter.Writer
	seen map[uintptr]bool
}

func (s *sourceWriter) raw(text string) {
	s.w.Raw([]byte(text))
}

func (s *sourceWriter) write(value any, depth int) {
	if depth > maxSourceDepth {
		s.raw("...")
		return
	}
	kind := KindOf(value)
	switch kind {
	case KindUndefined:
		s.raw("undefined")
		return
	case KindNull:
		s.w.Null()
		return
	case KindBoolean:
		s.w.Bool(reflect.ValueOf(value).Bool())
		return
	case KindNumber:
		f, _ := numberOf(value)
		s.raw(FormatNumber(f))
		return
	case KindString:
		s.w.String(reflect.ValueOf(value).String())
		return
	case KindDate:
		s.raw("new Date(" + strconv.FormatInt(value.(time.Time).UnixMilli(), 10) + ")")
		return
	case KindRegExp:
		s.raw("/" + value.(*regexp.Regexp).String() + "/")
		return
	case KindFunction:
		s.raw("function")
		return
	case KindOther:
		s.raw(fmt.Sprint(value))
		return
	}

	if t, ok := value.(reflect.Type); ok {
		s.raw(t.String())
		return
	}
	if err, ok := value.(error); ok {
		s.raw(fmt.Sprintf("%T(%s)", err, quote(safeErrorText(err))))
		return
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if rv.Kind() != reflect.Slice || rv.Len() != 0 {
			ptr := rv.Pointer()
			if s.seen[ptr] {
				s.raw("[Circular]")
				return
			}
			s.seen[ptr] = true
			defer delete(s.seen, ptr)
		}
	}

	switch rv.Kind() {
	case reflect.Pointer:
		s.write(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		arr := s.w.Array()
		for i := 0; i < rv.Len(); i++ {
			s.write(rv.Index(i).Interface(), depth+1)
		}
		arr.End()
	case reflect.Map:
		keyed := make(map[string]reflect.Value, rv.Len())
		names := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			name := PrimitiveString(iter.Key().Interface())
			keyed[name] = iter.Value()
			names = append(names, name)
		}
		slices.Sort(names)
		obj := s.w.Object()
		for _, name := range names {
			obj.Name(name)
			s.write(keyed[name].Interface(), depth+1)
		}
		obj.End()
	case reflect.Struct:
		obj := s.w.Object()
		for i := 0; i < rv.NumField(); i++ {
			field := rv.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			obj.Name(field.Name)
			s.write(rv.Field(i).Interface(), depth+1)
		}
		obj.End()
	default:
		s.raw(fmt.Sprint(value))
	}
}

func quote(text string) string {
	w := jwriter.NewWriter()
	w.String(text)
	return string(w.Bytes())
}

func safeErrorText(err error) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("<Error() panicked: %v>", r)
		}
	}()
	return err.Error()
}
