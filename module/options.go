package module

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the value type of an option.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Option is one declared module setting.
type Option struct {
	Name    string
	Help    string
	Kind    Kind
	Default any
	value   any
}

func (o *Option) Value() any { return o.value }

// Options is the ordered set of settings a module declares.
type Options struct {
	list   []*Option
	byName map[string]*Option
}

func NewOptions() *Options {
	return &Options{byName: make(map[string]*Option)}
}

func (o *Options) add(name, help string, kind Kind, def any) *Options {
	if _, ok := o.byName[name]; ok {
		panic(fmt.Sprintf("module: option %q declared twice", name))
	}
	opt := &Option{Name: name, Help: help, Kind: kind, Default: def, value: def}
	o.list = append(o.list, opt)
	o.byName[name] = opt
	return o
}

func (o *Options) AddInt(name string, def int, help string) *Options {
	return o.add(name, help, KindInt, def)
}

func (o *Options) AddFloat(name string, def float64, help string) *Options {
	return o.add(name, help, KindFloat, def)
}

func (o *Options) AddBool(name string, def bool, help string) *Options {
	return o.add(name, help, KindBool, def)
}

func (o *Options) AddString(name string, def string, help string) *Options {
	return o.add(name, help, KindString, def)
}

func (o *Options) Len() int { return len(o.list) }

// List returns the options in declaration order.
func (o *Options) List() []*Option { return o.list }

func (o *Options) Lookup(name string) (*Option, bool) {
	opt, ok := o.byName[name]
	return opt, ok
}

// GetInt returns the value of an int option, or zero if there is none.
func (o *Options) GetInt(name string) int {
	v, _ := o.get(name).(int)
	return v
}

func (o *Options) GetFloat(name string) float64 {
	v, _ := o.get(name).(float64)
	return v
}

func (o *Options) GetBool(name string) bool {
	v, _ := o.get(name).(bool)
	return v
}

func (o *Options) GetString(name string) string {
	v, _ := o.get(name).(string)
	return v
}

func (o *Options) get(name string) any {
	if opt, ok := o.byName[name]; ok {
		return opt.value
	}
	return nil
}

// Set parses value according to the option kind.
func (o *Options) Set(name, value string) error {
	opt, ok := o.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	value = strings.TrimSpace(value)
	var (
		v   any
		err error
	)
	switch opt.Kind {
	case KindInt:
		v, err = strconv.Atoi(value)
	case KindFloat:
		v, err = strconv.ParseFloat(value, 64)
	case KindBool:
		v, err = strconv.ParseBool(value)
	default:
		v = value
	}
	if err != nil {
		return fmt.Errorf("%w: %s=%q wants %s", ErrInvalidOption, name, value, opt.Kind)
	}
	opt.value = v
	return nil
}

// Parse applies settings written as key=value. A bare key sets a bool
// option to true.
func (o *Options) Parse(args ...string) error {
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok {
			if opt, found := o.byName[key]; found && opt.Kind == KindBool {
				value = "true"
			} else {
				return fmt.Errorf("%w: %q is not key=value", ErrInvalidOption, arg)
			}
		}
		if err := o.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Reset restores every default.
func (o *Options) Reset() {
	for _, opt := range o.list {
		opt.value = opt.Default
	}
}
