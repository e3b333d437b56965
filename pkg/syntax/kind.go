// Package syntax implements the lossless, immutable syntax tree shared by the
// parsers, the linter and the formatters.
//
// The tree has two layers. Green elements are immutable, position independent
// and may be shared between trees. Red elements (Node, Token) wrap a green
// element with its parent and absolute offset and are created on demand
// while traversing.
package syntax

// Kind classifies tokens and nodes. Token kinds sort before node kinds so
// that token sets fit in a fixed-size bitset.
type Kind uint16

// Special and literal token kinds.
const (
	Tombstone Kind = iota
	TokEOF
	TokError
	TokIdent
	TokNumberLiteral
	TokBigIntLiteral
	TokStringLiteral
	TokRegexLiteral
	TokTemplateChunk
	TokJSXText
	TokJSXStringLiteral
	TokJSXIdent

	// Trivia kinds produced by lexers; never part of the tree as tokens.
	TokWhitespace
	TokNewline
	TokComment
	TokSkippedTrivia

	// Punctuation.
	TokSemicolon   // ;
	TokComma       // ,
	TokLParen      // (
	TokRParen      // )
	TokLCurly      // {
	TokRCurly      // }
	TokLBrack      // [
	TokRBrack      // ]
	TokLAngle      // <
	TokRAngle      // >
	TokTilde       // ~
	TokQuestion    // ?
	TokQuestion2   // ??
	TokQuestionDot // ?.
	TokAmp         // &
	TokPipe        // |
	TokPlus        // +
	TokPlus2       // ++
	TokStar        // *
	TokStar2       // **
	TokSlash       // /
	TokCaret       // ^
	TokPercent     // %
	TokDot         // .
	TokDot3        // ...
	TokColon       // :
	TokEq          // =
	TokEq2         // ==
	TokEq3         // ===
	TokFatArrow    // =>
	TokBang        // !
	TokNeq         // !=
	TokNeq2        // !==
	TokMinus       // -
	TokMinus2      // --
	TokLtEq        // <=
	TokGtEq        // >=
	TokPlusEq      // +=
	TokMinusEq     // -=
	TokPipeEq      // |=
	TokAmpEq       // &=
	TokCaretEq     // ^=
	TokSlashEq     // /=
	TokStarEq      // *=
	TokPercentEq   // %=
	TokStar2Eq     // **=
	TokAmp2        // &&
	TokPipe2       // ||
	TokShl         // <<
	TokShr         // >>
	TokUShr        // >>>
	TokShlEq       // <<=
	TokShrEq       // >>=
	TokUShrEq      // >>>=
	TokAmp2Eq      // &&=
	TokPipe2Eq     // ||=
	TokQuestion2Eq // ??=
	TokAt          // @
	TokHash        // #
	TokBacktick    // `
	TokDollarCurly // ${

	// Reserved words.
	TokBreakKw
	TokCaseKw
	TokCatchKw
	TokClassKw
	TokConstKw
	TokContinueKw
	TokDebuggerKw
	TokDefaultKw
	TokDeleteKw
	TokDoKw
	TokElseKw
	TokEnumKw
	TokExportKw
	TokExtendsKw
	TokFalseKw
	TokFinallyKw
	TokForKw
	TokFunctionKw
	TokIfKw
	TokInKw
	TokInstanceofKw
	TokImportKw
	TokNewKw
	TokNullKw
	TokReturnKw
	TokSuperKw
	TokSwitchKw
	TokThisKw
	TokThrowKw
	TokTrueKw
	TokTryKw
	TokTypeofKw
	TokVarKw
	TokVoidKw
	TokWhileKw
	TokWithKw

	// Contextual keywords. Lexers produce TokIdent for these; parsers remap
	// them once the grammar position makes the keyword meaning certain.
	TokAbstractKw
	TokAccessorKw
	TokAsKw
	TokAssertsKw
	TokAsyncKw
	TokAwaitKw
	TokDeclareKw
	TokFromKw
	TokGetKw
	TokGlobalKw
	TokImplementsKw
	TokInferKw
	TokInterfaceKw
	TokIsKw
	TokKeyofKw
	TokLetKw
	TokMetaKw
	TokModuleKw
	TokNamespaceKw
	TokOfKw
	TokOutKw
	TokOverrideKw
	TokPrivateKw
	TokProtectedKw
	TokPublicKw
	TokReadonlyKw
	TokSatisfiesKw
	TokSetKw
	TokStaticKw
	TokTargetKw
	TokTypeKw
	TokUniqueKw
	TokYieldKw

	tokenKindEnd
)

// Node kinds.
const (
	// Bogus nodes stand in for input that could not be parsed.
	NodeBogus Kind = iota + 256
	NodeBogusStatement
	NodeBogusExpression
	NodeBogusMember
	NodeBogusBinding
	NodeBogusParameter
	NodeBogusType
	NodeBogusJSONValue

	// Roots and lists.
	NodeModule
	NodeScript
	NodeDirective
	NodeDirectiveList
	NodeModuleItemList
	NodeStatementList

	// Statements.
	NodeBlockStatement
	NodeEmptyStatement
	NodeExpressionStatement
	NodeVariableStatement
	NodeVariableDeclaration
	NodeVariableDeclaratorList
	NodeVariableDeclarator
	NodeInitializerClause
	NodeIfStatement
	NodeElseClause
	NodeForStatement
	NodeForInStatement
	NodeForOfStatement
	NodeForVariableDeclaration
	NodeWhileStatement
	NodeDoWhileStatement
	NodeReturnStatement
	NodeBreakStatement
	NodeContinueStatement
	NodeThrowStatement
	NodeTryStatement
	NodeTryFinallyStatement
	NodeCatchClause
	NodeCatchDeclaration
	NodeFinallyClause
	NodeSwitchStatement
	NodeSwitchCaseList
	NodeCaseClause
	NodeDefaultClause
	NodeLabeledStatement
	NodeDebuggerStatement
	NodeWithStatement

	// Functions and classes.
	NodeFunctionDeclaration
	NodeFunctionBody
	NodeParameters
	NodeParameterList
	NodeFormalParameter
	NodeRestParameter
	NodeClassDeclaration
	NodeClassExpression
	NodeExtendsClause
	NodeClassMemberList
	NodeMethodClassMember
	NodeGetterClassMember
	NodeSetterClassMember
	NodePropertyClassMember
	NodeConstructorClassMember
	NodeStaticInitializationBlockClassMember
	NodeEmptyClassMember
	NodeModifierList
	NodeDecorator
	NodeDecoratorList

	// Modules.
	NodeImport
	NodeNamespaceImportSpecifier
	NodeNamedImportSpecifiers
	NodeNamedImportSpecifierList
	NodeNamedImportSpecifier
	NodeImportAttributes
	NodeImportAttributeList
	NodeImportAttribute
	NodeExport
	NodeExportDefaultDeclarationClause
	NodeExportDefaultExpressionClause
	NodeExportNamedClause
	NodeExportNamedFromClause
	NodeExportNamedSpecifierList
	NodeExportNamedSpecifier
	NodeExportFromClause
	NodeExportAsClause

	// Expressions.
	NodeIdentifierExpression
	NodeThisExpression
	NodeSuperExpression
	NodeNumberLiteralExpression
	NodeBigIntLiteralExpression
	NodeStringLiteralExpression
	NodeBooleanLiteralExpression
	NodeNullLiteralExpression
	NodeRegexLiteralExpression
	NodeTemplateExpression
	NodeTemplateElementList
	NodeTemplateChunkElement
	NodeTemplateElement
	NodeArrayExpression
	NodeArrayElementList
	NodeArrayHole
	NodeSpread
	NodeObjectExpression
	NodeObjectMemberList
	NodePropertyObjectMember
	NodeShorthandPropertyObjectMember
	NodeMethodObjectMember
	NodeGetterObjectMember
	NodeSetterObjectMember
	NodeLiteralMemberName
	NodeComputedMemberName
	NodePrivateName
	NodeParenthesizedExpression
	NodeSequenceExpression
	NodeAssignmentExpression
	NodeConditionalExpression
	NodeBinaryExpression
	NodeLogicalExpression
	NodeUnaryExpression
	NodePreUpdateExpression
	NodePostUpdateExpression
	NodeAwaitExpression
	NodeYieldExpression
	NodeCallExpression
	NodeCallArguments
	NodeCallArgumentList
	NodeNewExpression
	NodeStaticMemberExpression
	NodeComputedMemberExpression
	NodeFunctionExpression
	NodeArrowFunctionExpression
	NodeImportCallExpression
	NodeImportMetaExpression
	NodeNewTargetExpression

	// Bindings.
	NodeIdentifierBinding
	NodeArrayBindingPattern
	NodeArrayBindingElementList
	NodeArrayBindingPatternElement
	NodeArrayBindingPatternRestElement
	NodeObjectBindingPattern
	NodeObjectBindingPropertyList
	NodeObjectBindingPatternProperty
	NodeObjectBindingPatternShorthandProperty
	NodeObjectBindingPatternRest

	// TypeScript.
	NodeTsDeclareFunctionDeclaration
	NodeTsMethodSignatureClassMember
	NodeTsPropertyParameter
	NodeTsThisParameter
	NodeTsTypeAnnotation
	NodeTsReturnTypeAnnotation
	NodeTsTypeParameters
	NodeTsTypeParameterList
	NodeTsTypeParameter
	NodeTsTypeConstraintClause
	NodeTsDefaultTypeClause
	NodeTsTypeArguments
	NodeTsTypeArgumentList
	NodeTsReferenceType
	NodeTsQualifiedName
	NodeTsArrayType
	NodeTsIndexedAccessType
	NodeTsUnionType
	NodeTsUnionTypeVariantList
	NodeTsIntersectionType
	NodeTsIntersectionTypeElementList
	NodeTsTupleType
	NodeTsTupleTypeElementList
	NodeTsNamedTupleTypeElement
	NodeTsRestTupleTypeElement
	NodeTsOptionalTupleTypeElement
	NodeTsObjectType
	NodeTsTypeMemberList
	NodeTsPropertySignatureTypeMember
	NodeTsMethodSignatureTypeMember
	NodeTsIndexSignatureTypeMember
	NodeTsIndexSignatureParameter
	NodeTsCallSignatureTypeMember
	NodeTsConstructSignatureTypeMember
	NodeTsFunctionType
	NodeTsConstructorType
	NodeTsParenthesizedType
	NodeTsLiteralType
	NodeTsTypeofType
	NodeTsTypeOperatorType
	NodeTsThisType
	NodeTsConditionalType
	NodeTsInferType
	NodeTsMappedType
	NodeTsTypePredicate
	NodeTsAsExpression
	NodeTsSatisfiesExpression
	NodeTsNonNullAssertionExpression
	NodeTsTypeAliasDeclaration
	NodeTsInterfaceDeclaration
	NodeTsExtendsClause
	NodeTsImplementsClause
	NodeTsTypeList
	NodeTsEnumDeclaration
	NodeTsEnumMemberList
	NodeTsEnumMember
	NodeTsDeclareStatement
	NodeTsModuleDeclaration
	NodeTsModuleBlock

	// JSX.
	NodeJSXTagExpression
	NodeJSXElement
	NodeJSXOpeningElement
	NodeJSXClosingElement
	NodeJSXSelfClosingElement
	NodeJSXFragment
	NodeJSXOpeningFragment
	NodeJSXClosingFragment
	NodeJSXName
	NodeJSXMemberName
	NodeJSXNamespaceName
	NodeJSXAttributeList
	NodeJSXAttribute
	NodeJSXAttributeInitializerClause
	NodeJSXSpreadAttribute
	NodeJSXString
	NodeJSXExpressionAttributeValue
	NodeJSXChildList
	NodeJSXText
	NodeJSXExpressionChild
	NodeJSXSpreadChild

	// JSON.
	NodeJSONRoot
	NodeJSONObjectValue
	NodeJSONMemberList
	NodeJSONMember
	NodeJSONMemberName
	NodeJSONArrayValue
	NodeJSONArrayElementList
	NodeJSONStringValue
	NodeJSONNumberValue
	NodeJSONBooleanValue
	NodeJSONNullValue

	nodeKindEnd
)

// IsToken reports whether k is a token kind.
func (k Kind) IsToken() bool {
	return k > Tombstone && k < tokenKindEnd
}

// IsNode reports whether k is a node kind.
func (k Kind) IsNode() bool {
	return k >= NodeBogus && k < nodeKindEnd
}

// IsTrivia reports whether k is one of the lexer trivia kinds.
func (k Kind) IsTrivia() bool {
	switch k {
	case TokWhitespace, TokNewline, TokComment, TokSkippedTrivia:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether k is a reserved or contextual keyword.
func (k Kind) IsKeyword() bool {
	return k >= TokBreakKw && k <= TokYieldKw
}

// IsContextualKeyword reports whether k is a keyword that lexes as an
// identifier.
func (k Kind) IsContextualKeyword() bool {
	return k >= TokAbstractKw && k <= TokYieldKw
}

// IsPunct reports whether k is punctuation.
func (k Kind) IsPunct() bool {
	return k >= TokSemicolon && k <= TokDollarCurly
}

// IsLiteral reports whether k is a literal token.
func (k Kind) IsLiteral() bool {
	switch k {
	case TokNumberLiteral, TokBigIntLiteral, TokStringLiteral, TokRegexLiteral:
		return true
	default:
		return false
	}
}

// IsBogus reports whether k is one of the bogus node kinds.
func (k Kind) IsBogus() bool {
	return k >= NodeBogus && k <= NodeBogusJSONValue
}

// IsList reports whether nodes of kind k are lists with a variable number of
// children.
func (k Kind) IsList() bool {
	_, ok := listKinds[k]
	return ok
}

// IsSeparatedList reports whether k is a list whose elements are separated
// by comma (or other separator) tokens kept as children.
func (k Kind) IsSeparatedList() bool {
	return listKinds[k]
}

// listKinds maps every list kind to whether it holds separators.
var listKinds = map[Kind]bool{
	NodeDirectiveList:                 false,
	NodeModuleItemList:                false,
	NodeStatementList:                 false,
	NodeVariableDeclaratorList:        true,
	NodeSwitchCaseList:                false,
	NodeParameterList:                 true,
	NodeClassMemberList:               false,
	NodeModifierList:                  false,
	NodeDecoratorList:                 false,
	NodeNamedImportSpecifierList:      true,
	NodeImportAttributeList:           true,
	NodeExportNamedSpecifierList:      true,
	NodeTemplateElementList:           false,
	NodeArrayElementList:              true,
	NodeObjectMemberList:              true,
	NodeCallArgumentList:              true,
	NodeArrayBindingElementList:       true,
	NodeObjectBindingPropertyList:     true,
	NodeTsTypeParameterList:           true,
	NodeTsTypeArgumentList:            true,
	NodeTsUnionTypeVariantList:        true,
	NodeTsIntersectionTypeElementList: true,
	NodeTsTupleTypeElementList:        true,
	NodeTsTypeMemberList:              false,
	NodeTsTypeList:                    true,
	NodeTsEnumMemberList:              true,
	NodeJSXAttributeList:              false,
	NodeJSXChildList:                  false,
	NodeJSONMemberList:                true,
	NodeJSONArrayElementList:          true,
}
