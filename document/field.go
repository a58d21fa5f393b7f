package document

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
)

type (
	field struct {
		name       string
		path       string
		rType      reflect.Type
		xField     *xunsafe.Field
		embedded   []*xunsafe.Field
		omitEmpty  bool
		timeLayout string
	}

	structInfo struct {
		fields []*field
		err    error
	}
)

// holder returns pointer of the struct declaring the field
func (f *field) holder(ptr unsafe.Pointer) unsafe.Pointer {
	for _, embedded := range f.embedded {
		ptr = embedded.Pointer(ptr)
	}
	return ptr
}

// value returns settable field value of the struct at ptr
func (f *field) value(ptr unsafe.Pointer) reflect.Value {
	return reflect.NewAt(f.rType, f.xField.Pointer(f.holder(ptr))).Elem()
}

func (m *Mapper) structInfo(rType reflect.Type) (*structInfo, error) {
	if v, ok := m.structCache.Load(rType); ok {
		info := v.(*structInfo)
		return info, info.err
	}
	info := &structInfo{}
	info.err = m.buildStructInfo(rType, info, nil, "")
	v, _ := m.structCache.LoadOrStore(rType, info)
	info = v.(*structInfo)
	return info, info.err
}

func (m *Mapper) buildStructInfo(rType reflect.Type, info *structInfo, embedded []*xunsafe.Field, prefix string) error {
	for i := 0; i < rType.NumField(); i++ {
		structField := rType.Field(i)
		if structField.Anonymous && structField.Type.Kind() == reflect.Struct {
			chain := append(append([]*xunsafe.Field{}, embedded...), xunsafe.NewField(structField))
			if err := m.buildStructInfo(structField.Type, info, chain, prefix+structField.Name+"."); err != nil {
				return err
			}
			continue
		}
		if !structField.IsExported() {
			continue
		}
		aField, err := m.newField(structField)
		if err != nil {
			return fmt.Errorf("invalid %v.%v tag: %w", rType.String(), structField.Name, err)
		}
		if aField == nil {
			continue
		}
		aField.embedded = embedded
		aField.path = prefix + structField.Name
		info.fields = append(info.fields, aField)
	}
	return nil
}

// newField returns nil for ignored fields
func (m *Mapper) newField(structField reflect.StructField) (*field, error) {
	tag, err := format.Parse(structField.Tag)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		tag = &format.Tag{}
	}
	normalizeFlag(tag)
	jsonTag := parseJSONTag(structField.Tag.Get("json"))
	if tag.Ignore || jsonTag.transient {
		return nil, nil
	}
	ret := &field{
		rType:      structField.Type,
		xField:     xunsafe.NewField(structField),
		omitEmpty:  tag.Omitempty || jsonTag.omitEmpty,
		timeLayout: tag.TimeLayout,
	}
	switch {
	case tag.Name != "":
		ret.name = tag.Name
		if tag.CaseFormat != "" {
			ret.name = formatName(tag.Name, text.NewCaseFormat(tag.CaseFormat))
		}
	case jsonTag.name != "":
		ret.name = jsonTag.name
	case tag.CaseFormat != "":
		ret.name = formatName(structField.Name, text.NewCaseFormat(tag.CaseFormat))
	default:
		ret.name = formatName(structField.Name, m.options.caseFormat)
	}
	return ret, nil
}

// normalizeFlag turns a bare flag token such as `format:"omitempty"`, parsed as a name, back into the flag
func normalizeFlag(tag *format.Tag) {
	switch strings.ToLower(tag.Name) {
	case "ignore", "transient":
		tag.Name = ""
		tag.Ignore = true
	case "omitempty":
		tag.Name = ""
		tag.Omitempty = true
	}
}

func formatName(name string, caseFormat text.CaseFormat) string {
	if !caseFormat.IsDefined() {
		return name
	}
	if name == "ID" {
		switch caseFormat {
		case text.CaseFormatLower, text.CaseFormatLowerCamel, text.CaseFormatLowerUnderscore:
			return "id"
		}
	}
	src := text.DetectCaseFormat(name)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(name, caseFormat)
}

type jsonTag struct {
	name      string
	omitEmpty bool
	transient bool
}

func parseJSONTag(raw string) jsonTag {
	if raw == "" {
		return jsonTag{}
	}
	parts := strings.Split(raw, ",")
	ret := jsonTag{name: parts[0], transient: parts[0] == "-"}
	for _, part := range parts[1:] {
		if part == "omitempty" {
			ret.omitEmpty = true
		}
	}
	return ret
}
