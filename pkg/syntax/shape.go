package syntax

// fieldIndexes maps kind and field name to the slot index.
var fieldIndexes = func() map[Kind]map[string]int {
	indexes := make(map[Kind]map[string]int, len(shapes))
	for kind, fields := range shapes {
		byName := make(map[string]int, len(fields))
		for i, field := range fields {
			byName[field] = i
		}
		indexes[kind] = byName
	}
	return indexes
}()

// Shape returns the slot names of a fixed-shape node kind.
func Shape(kind Kind) ([]string, bool) {
	fields, ok := shapes[kind]
	return fields, ok
}

// FieldIndex returns the slot index of field in nodes of kind.
func FieldIndex(kind Kind, field string) (int, bool) {
	idx, ok := fieldIndexes[kind][field]
	return idx, ok
}

// FieldName returns the name of slot i of kind, or "" if kind has no shape.
func FieldName(kind Kind, slot int) string {
	fields := shapes[kind]
	if slot < 0 || slot >= len(fields) {
		return ""
	}
	return fields[slot]
}

// fitsShape reports whether a node of kind with slotCount slots is well
// formed. Lists and bogus nodes accept any number of slots.
func fitsShape(kind Kind, slotCount int) bool {
	if kind.IsList() || kind.IsBogus() {
		return true
	}
	fields, ok := shapes[kind]
	if !ok {
		return true
	}
	return len(fields) == slotCount
}

// BogusKindFor returns the bogus kind used when a node of kind cannot be
// built with its declared shape.
func BogusKindFor(kind Kind) Kind {
	switch {
	case kind >= NodeBlockStatement && kind <= NodeWithStatement,
		kind == NodeFunctionDeclaration, kind == NodeClassDeclaration,
		kind == NodeTsDeclareFunctionDeclaration, kind == NodeImport, kind == NodeExport,
		kind == NodeTsTypeAliasDeclaration, kind == NodeTsInterfaceDeclaration,
		kind == NodeTsEnumDeclaration, kind == NodeTsDeclareStatement, kind == NodeTsModuleDeclaration:
		return NodeBogusStatement
	case kind >= NodeMethodClassMember && kind <= NodeEmptyClassMember,
		kind == NodeTsMethodSignatureClassMember,
		kind >= NodePropertyObjectMember && kind <= NodeSetterObjectMember:
		return NodeBogusMember
	case kind >= NodeIdentifierBinding && kind <= NodeObjectBindingPatternRest:
		return NodeBogusBinding
	case kind == NodeFormalParameter, kind == NodeRestParameter,
		kind == NodeTsPropertyParameter, kind == NodeTsThisParameter:
		return NodeBogusParameter
	case kind >= NodeTsReferenceType && kind <= NodeTsTypePredicate:
		return NodeBogusType
	case kind >= NodeJSONRoot && kind <= NodeJSONNullValue:
		return NodeBogusJSONValue
	case kind >= NodeIdentifierExpression && kind <= NodeNewTargetExpression,
		kind >= NodeTsAsExpression && kind <= NodeTsNonNullAssertionExpression,
		kind == NodeJSXTagExpression:
		return NodeBogusExpression
	default:
		return NodeBogus
	}
}
