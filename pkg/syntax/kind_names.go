package syntax

import "fmt"

// kindNames holds the debug name of every kind.
var kindNames = map[Kind]string{
	Tombstone:                                 "Tombstone",
	TokEOF:                                    "EOF",
	TokError:                                  "Error",
	TokIdent:                                  "Ident",
	TokNumberLiteral:                          "NumberLiteral",
	TokBigIntLiteral:                          "BigIntLiteral",
	TokStringLiteral:                          "StringLiteral",
	TokRegexLiteral:                           "RegexLiteral",
	TokTemplateChunk:                          "TemplateChunk",
	TokJSXText:                                "JSXText",
	TokJSXStringLiteral:                       "JSXStringLiteral",
	TokJSXIdent:                               "JSXIdent",
	TokWhitespace:                             "Whitespace",
	TokNewline:                                "Newline",
	TokComment:                                "Comment",
	TokSkippedTrivia:                          "SkippedTrivia",
	TokSemicolon:                              "Semicolon",
	TokComma:                                  "Comma",
	TokLParen:                                 "LParen",
	TokRParen:                                 "RParen",
	TokLCurly:                                 "LCurly",
	TokRCurly:                                 "RCurly",
	TokLBrack:                                 "LBrack",
	TokRBrack:                                 "RBrack",
	TokLAngle:                                 "LAngle",
	TokRAngle:                                 "RAngle",
	TokTilde:                                  "Tilde",
	TokQuestion:                               "Question",
	TokQuestion2:                              "Question2",
	TokQuestionDot:                            "QuestionDot",
	TokAmp:                                    "Amp",
	TokPipe:                                   "Pipe",
	TokPlus:                                   "Plus",
	TokPlus2:                                  "Plus2",
	TokStar:                                   "Star",
	TokStar2:                                  "Star2",
	TokSlash:                                  "Slash",
	TokCaret:                                  "Caret",
	TokPercent:                                "Percent",
	TokDot:                                    "Dot",
	TokDot3:                                   "Dot3",
	TokColon:                                  "Colon",
	TokEq:                                     "Eq",
	TokEq2:                                    "Eq2",
	TokEq3:                                    "Eq3",
	TokFatArrow:                               "FatArrow",
	TokBang:                                   "Bang",
	TokNeq:                                    "Neq",
	TokNeq2:                                   "Neq2",
	TokMinus:                                  "Minus",
	TokMinus2:                                 "Minus2",
	TokLtEq:                                   "LtEq",
	TokGtEq:                                   "GtEq",
	TokPlusEq:                                 "PlusEq",
	TokMinusEq:                                "MinusEq",
	TokPipeEq:                                 "PipeEq",
	TokAmpEq:                                  "AmpEq",
	TokCaretEq:                                "CaretEq",
	TokSlashEq:                                "SlashEq",
	TokStarEq:                                 "StarEq",
	TokPercentEq:                              "PercentEq",
	TokStar2Eq:                                "Star2Eq",
	TokAmp2:                                   "Amp2",
	TokPipe2:                                  "Pipe2",
	TokShl:                                    "Shl",
	TokShr:                                    "Shr",
	TokUShr:                                   "UShr",
	TokShlEq:                                  "ShlEq",
	TokShrEq:                                  "ShrEq",
	TokUShrEq:                                 "UShrEq",
	TokAmp2Eq:                                 "Amp2Eq",
	TokPipe2Eq:                                "Pipe2Eq",
	TokQuestion2Eq:                            "Question2Eq",
	TokAt:                                     "At",
	TokHash:                                   "Hash",
	TokBacktick:                               "Backtick",
	TokDollarCurly:                            "DollarCurly",
	TokBreakKw:                                "BreakKw",
	TokCaseKw:                                 "CaseKw",
	TokCatchKw:                                "CatchKw",
	TokClassKw:                                "ClassKw",
	TokConstKw:                                "ConstKw",
	TokContinueKw:                             "ContinueKw",
	TokDebuggerKw:                             "DebuggerKw",
	TokDefaultKw:                              "DefaultKw",
	TokDeleteKw:                               "DeleteKw",
	TokDoKw:                                   "DoKw",
	TokElseKw:                                 "ElseKw",
	TokEnumKw:                                 "EnumKw",
	TokExportKw:                               "ExportKw",
	TokExtendsKw:                              "ExtendsKw",
	TokFalseKw:                                "FalseKw",
	TokFinallyKw:                              "FinallyKw",
	TokForKw:                                  "ForKw",
	TokFunctionKw:                             "FunctionKw",
	TokIfKw:                                   "IfKw",
	TokInKw:                                   "InKw",
	TokInstanceofKw:                           "InstanceofKw",
	TokImportKw:                               "ImportKw",
	TokNewKw:                                  "NewKw",
	TokNullKw:                                 "NullKw",
	TokReturnKw:                               "ReturnKw",
	TokSuperKw:                                "SuperKw",
	TokSwitchKw:                               "SwitchKw",
	TokThisKw:                                 "ThisKw",
	TokThrowKw:                                "ThrowKw",
	TokTrueKw:                                 "TrueKw",
	TokTryKw:                                  "TryKw",
	TokTypeofKw:                               "TypeofKw",
	TokVarKw:                                  "VarKw",
	TokVoidKw:                                 "VoidKw",
	TokWhileKw:                                "WhileKw",
	TokWithKw:                                 "WithKw",
	TokAbstractKw:                             "AbstractKw",
	TokAccessorKw:                             "AccessorKw",
	TokAsKw:                                   "AsKw",
	TokAssertsKw:                              "AssertsKw",
	TokAsyncKw:                                "AsyncKw",
	TokAwaitKw:                                "AwaitKw",
	TokDeclareKw:                              "DeclareKw",
	TokFromKw:                                 "FromKw",
	TokGetKw:                                  "GetKw",
	TokGlobalKw:                               "GlobalKw",
	TokImplementsKw:                           "ImplementsKw",
	TokInferKw:                                "InferKw",
	TokInterfaceKw:                            "InterfaceKw",
	TokIsKw:                                   "IsKw",
	TokKeyofKw:                                "KeyofKw",
	TokLetKw:                                  "LetKw",
	TokMetaKw:                                 "MetaKw",
	TokModuleKw:                               "ModuleKw",
	TokNamespaceKw:                            "NamespaceKw",
	TokOfKw:                                   "OfKw",
	TokOutKw:                                  "OutKw",
	TokOverrideKw:                             "OverrideKw",
	TokPrivateKw:                              "PrivateKw",
	TokProtectedKw:                            "ProtectedKw",
	TokPublicKw:                               "PublicKw",
	TokReadonlyKw:                             "ReadonlyKw",
	TokSatisfiesKw:                            "SatisfiesKw",
	TokSetKw:                                  "SetKw",
	TokStaticKw:                               "StaticKw",
	TokTargetKw:                               "TargetKw",
	TokTypeKw:                                 "TypeKw",
	TokUniqueKw:                               "UniqueKw",
	TokYieldKw:                                "YieldKw",
	NodeBogus:                                 "Bogus",
	NodeBogusStatement:                        "BogusStatement",
	NodeBogusExpression:                       "BogusExpression",
	NodeBogusMember:                           "BogusMember",
	NodeBogusBinding:                          "BogusBinding",
	NodeBogusParameter:                        "BogusParameter",
	NodeBogusType:                             "BogusType",
	NodeBogusJSONValue:                        "BogusJSONValue",
	NodeModule:                                "Module",
	NodeScript:                                "Script",
	NodeDirective:                             "Directive",
	NodeDirectiveList:                         "DirectiveList",
	NodeModuleItemList:                        "ModuleItemList",
	NodeStatementList:                         "StatementList",
	NodeBlockStatement:                        "BlockStatement",
	NodeEmptyStatement:                        "EmptyStatement",
	NodeExpressionStatement:                   "ExpressionStatement",
	NodeVariableStatement:                     "VariableStatement",
	NodeVariableDeclaration:                   "VariableDeclaration",
	NodeVariableDeclaratorList:                "VariableDeclaratorList",
	NodeVariableDeclarator:                    "VariableDeclarator",
	NodeInitializerClause:                     "InitializerClause",
	NodeIfStatement:                           "IfStatement",
	NodeElseClause:                            "ElseClause",
	NodeForStatement:                          "ForStatement",
	NodeForInStatement:                        "ForInStatement",
	NodeForOfStatement:                        "ForOfStatement",
	NodeForVariableDeclaration:                "ForVariableDeclaration",
	NodeWhileStatement:                        "WhileStatement",
	NodeDoWhileStatement:                      "DoWhileStatement",
	NodeReturnStatement:                       "ReturnStatement",
	NodeBreakStatement:                        "BreakStatement",
	NodeContinueStatement:                     "ContinueStatement",
	NodeThrowStatement:                        "ThrowStatement",
	NodeTryStatement:                          "TryStatement",
	NodeTryFinallyStatement:                   "TryFinallyStatement",
	NodeCatchClause:                           "CatchClause",
	NodeCatchDeclaration:                      "CatchDeclaration",
	NodeFinallyClause:                         "FinallyClause",
	NodeSwitchStatement:                       "SwitchStatement",
	NodeSwitchCaseList:                        "SwitchCaseList",
	NodeCaseClause:                            "CaseClause",
	NodeDefaultClause:                         "DefaultClause",
	NodeLabeledStatement:                      "LabeledStatement",
	NodeDebuggerStatement:                     "DebuggerStatement",
	NodeWithStatement:                         "WithStatement",
	NodeFunctionDeclaration:                   "FunctionDeclaration",
	NodeFunctionBody:                          "FunctionBody",
	NodeParameters:                            "Parameters",
	NodeParameterList:                         "ParameterList",
	NodeFormalParameter:                       "FormalParameter",
	NodeRestParameter:                         "RestParameter",
	NodeClassDeclaration:                      "ClassDeclaration",
	NodeClassExpression:                       "ClassExpression",
	NodeExtendsClause:                         "ExtendsClause",
	NodeClassMemberList:                       "ClassMemberList",
	NodeMethodClassMember:                     "MethodClassMember",
	NodeGetterClassMember:                     "GetterClassMember",
	NodeSetterClassMember:                     "SetterClassMember",
	NodePropertyClassMember:                   "PropertyClassMember",
	NodeConstructorClassMember:                "ConstructorClassMember",
	NodeStaticInitializationBlockClassMember:  "StaticInitializationBlockClassMember",
	NodeEmptyClassMember:                      "EmptyClassMember",
	NodeModifierList:                          "ModifierList",
	NodeDecorator:                             "Decorator",
	NodeDecoratorList:                         "DecoratorList",
	NodeImport:                                "Import",
	NodeNamespaceImportSpecifier:              "NamespaceImportSpecifier",
	NodeNamedImportSpecifiers:                 "NamedImportSpecifiers",
	NodeNamedImportSpecifierList:              "NamedImportSpecifierList",
	NodeNamedImportSpecifier:                  "NamedImportSpecifier",
	NodeImportAttributes:                      "ImportAttributes",
	NodeImportAttributeList:                   "ImportAttributeList",
	NodeImportAttribute:                       "ImportAttribute",
	NodeExport:                                "Export",
	NodeExportDefaultDeclarationClause:        "ExportDefaultDeclarationClause",
	NodeExportDefaultExpressionClause:         "ExportDefaultExpressionClause",
	NodeExportNamedClause:                     "ExportNamedClause",
	NodeExportNamedFromClause:                 "ExportNamedFromClause",
	NodeExportNamedSpecifierList:              "ExportNamedSpecifierList",
	NodeExportNamedSpecifier:                  "ExportNamedSpecifier",
	NodeExportFromClause:                      "ExportFromClause",
	NodeExportAsClause:                        "ExportAsClause",
	NodeIdentifierExpression:                  "IdentifierExpression",
	NodeThisExpression:                        "ThisExpression",
	NodeSuperExpression:                       "SuperExpression",
	NodeNumberLiteralExpression:               "NumberLiteralExpression",
	NodeBigIntLiteralExpression:               "BigIntLiteralExpression",
	NodeStringLiteralExpression:               "StringLiteralExpression",
	NodeBooleanLiteralExpression:              "BooleanLiteralExpression",
	NodeNullLiteralExpression:                 "NullLiteralExpression",
	NodeRegexLiteralExpression:                "RegexLiteralExpression",
	NodeTemplateExpression:                    "TemplateExpression",
	NodeTemplateElementList:                   "TemplateElementList",
	NodeTemplateChunkElement:                  "TemplateChunkElement",
	NodeTemplateElement:                       "TemplateElement",
	NodeArrayExpression:                       "ArrayExpression",
	NodeArrayElementList:                      "ArrayElementList",
	NodeArrayHole:                             "ArrayHole",
	NodeSpread:                                "Spread",
	NodeObjectExpression:                      "ObjectExpression",
	NodeObjectMemberList:                      "ObjectMemberList",
	NodePropertyObjectMember:                  "PropertyObjectMember",
	NodeShorthandPropertyObjectMember:         "ShorthandPropertyObjectMember",
	NodeMethodObjectMember:                    "MethodObjectMember",
	NodeGetterObjectMember:                    "GetterObjectMember",
	NodeSetterObjectMember:                    "SetterObjectMember",
	NodeLiteralMemberName:                     "LiteralMemberName",
	NodeComputedMemberName:                    "ComputedMemberName",
	NodePrivateName:                           "PrivateName",
	NodeParenthesizedExpression:               "ParenthesizedExpression",
	NodeSequenceExpression:                    "SequenceExpression",
	NodeAssignmentExpression:                  "AssignmentExpression",
	NodeConditionalExpression:                 "ConditionalExpression",
	NodeBinaryExpression:                      "BinaryExpression",
	NodeLogicalExpression:                     "LogicalExpression",
	NodeUnaryExpression:                       "UnaryExpression",
	NodePreUpdateExpression:                   "PreUpdateExpression",
	NodePostUpdateExpression:                  "PostUpdateExpression",
	NodeAwaitExpression:                       "AwaitExpression",
	NodeYieldExpression:                       "YieldExpression",
	NodeCallExpression:                        "CallExpression",
	NodeCallArguments:                         "CallArguments",
	NodeCallArgumentList:                      "CallArgumentList",
	NodeNewExpression:                         "NewExpression",
	NodeStaticMemberExpression:                "StaticMemberExpression",
	NodeComputedMemberExpression:              "ComputedMemberExpression",
	NodeFunctionExpression:                    "FunctionExpression",
	NodeArrowFunctionExpression:               "ArrowFunctionExpression",
	NodeImportCallExpression:                  "ImportCallExpression",
	NodeImportMetaExpression:                  "ImportMetaExpression",
	NodeNewTargetExpression:                   "NewTargetExpression",
	NodeIdentifierBinding:                     "IdentifierBinding",
	NodeArrayBindingPattern:                   "ArrayBindingPattern",
	NodeArrayBindingElementList:               "ArrayBindingElementList",
	NodeArrayBindingPatternElement:            "ArrayBindingPatternElement",
	NodeArrayBindingPatternRestElement:        "ArrayBindingPatternRestElement",
	NodeObjectBindingPattern:                  "ObjectBindingPattern",
	NodeObjectBindingPropertyList:             "ObjectBindingPropertyList",
	NodeObjectBindingPatternProperty:          "ObjectBindingPatternProperty",
	NodeObjectBindingPatternShorthandProperty: "ObjectBindingPatternShorthandProperty",
	NodeObjectBindingPatternRest:              "ObjectBindingPatternRest",
	NodeTsDeclareFunctionDeclaration:          "TsDeclareFunctionDeclaration",
	NodeTsMethodSignatureClassMember:          "TsMethodSignatureClassMember",
	NodeTsPropertyParameter:                   "TsPropertyParameter",
	NodeTsThisParameter:                       "TsThisParameter",
	NodeTsTypeAnnotation:                      "TsTypeAnnotation",
	NodeTsReturnTypeAnnotation:                "TsReturnTypeAnnotation",
	NodeTsTypeParameters:                      "TsTypeParameters",
	NodeTsTypeParameterList:                   "TsTypeParameterList",
	NodeTsTypeParameter:                       "TsTypeParameter",
	NodeTsTypeConstraintClause:                "TsTypeConstraintClause",
	NodeTsDefaultTypeClause:                   "TsDefaultTypeClause",
	NodeTsTypeArguments:                       "TsTypeArguments",
	NodeTsTypeArgumentList:                    "TsTypeArgumentList",
	NodeTsReferenceType:                       "TsReferenceType",
	NodeTsQualifiedName:                       "TsQualifiedName",
	NodeTsArrayType:                           "TsArrayType",
	NodeTsIndexedAccessType:                   "TsIndexedAccessType",
	NodeTsUnionType:                           "TsUnionType",
	NodeTsUnionTypeVariantList:                "TsUnionTypeVariantList",
	NodeTsIntersectionType:                    "TsIntersectionType",
	NodeTsIntersectionTypeElementList:         "TsIntersectionTypeElementList",
	NodeTsTupleType:                           "TsTupleType",
	NodeTsTupleTypeElementList:                "TsTupleTypeElementList",
	NodeTsNamedTupleTypeElement:               "TsNamedTupleTypeElement",
	NodeTsRestTupleTypeElement:                "TsRestTupleTypeElement",
	NodeTsOptionalTupleTypeElement:            "TsOptionalTupleTypeElement",
	NodeTsObjectType:                          "TsObjectType",
	NodeTsTypeMemberList:                      "TsTypeMemberList",
	NodeTsPropertySignatureTypeMember:         "TsPropertySignatureTypeMember",
	NodeTsMethodSignatureTypeMember:           "TsMethodSignatureTypeMember",
	NodeTsIndexSignatureTypeMember:            "TsIndexSignatureTypeMember",
	NodeTsIndexSignatureParameter:             "TsIndexSignatureParameter",
	NodeTsCallSignatureTypeMember:             "TsCallSignatureTypeMember",
	NodeTsConstructSignatureTypeMember:        "TsConstructSignatureTypeMember",
	NodeTsFunctionType:                        "TsFunctionType",
	NodeTsConstructorType:                     "TsConstructorType",
	NodeTsParenthesizedType:                   "TsParenthesizedType",
	NodeTsLiteralType:                         "TsLiteralType",
	NodeTsTypeofType:                          "TsTypeofType",
	NodeTsTypeOperatorType:                    "TsTypeOperatorType",
	NodeTsThisType:                            "TsThisType",
	NodeTsConditionalType:                     "TsConditionalType",
	NodeTsInferType:                           "TsInferType",
	NodeTsMappedType:                          "TsMappedType",
	NodeTsTypePredicate:                       "TsTypePredicate",
	NodeTsAsExpression:                        "TsAsExpression",
	NodeTsSatisfiesExpression:                 "TsSatisfiesExpression",
	NodeTsNonNullAssertionExpression:          "TsNonNullAssertionExpression",
	NodeTsTypeAliasDeclaration:                "TsTypeAliasDeclaration",
	NodeTsInterfaceDeclaration:                "TsInterfaceDeclaration",
	NodeTsExtendsClause:                       "TsExtendsClause",
	NodeTsImplementsClause:                    "TsImplementsClause",
	NodeTsTypeList:                            "TsTypeList",
	NodeTsEnumDeclaration:                     "TsEnumDeclaration",
	NodeTsEnumMemberList:                      "TsEnumMemberList",
	NodeTsEnumMember:                          "TsEnumMember",
	NodeTsDeclareStatement:                    "TsDeclareStatement",
	NodeTsModuleDeclaration:                   "TsModuleDeclaration",
	NodeTsModuleBlock:                         "TsModuleBlock",
	NodeJSXTagExpression:                      "JSXTagExpression",
	NodeJSXElement:                            "JSXElement",
	NodeJSXOpeningElement:                     "JSXOpeningElement",
	NodeJSXClosingElement:                     "JSXClosingElement",
	NodeJSXSelfClosingElement:                 "JSXSelfClosingElement",
	NodeJSXFragment:                           "JSXFragment",
	NodeJSXOpeningFragment:                    "JSXOpeningFragment",
	NodeJSXClosingFragment:                    "JSXClosingFragment",
	NodeJSXName:                               "JSXName",
	NodeJSXMemberName:                         "JSXMemberName",
	NodeJSXNamespaceName:                      "JSXNamespaceName",
	NodeJSXAttributeList:                      "JSXAttributeList",
	NodeJSXAttribute:                          "JSXAttribute",
	NodeJSXAttributeInitializerClause:         "JSXAttributeInitializerClause",
	NodeJSXSpreadAttribute:                    "JSXSpreadAttribute",
	NodeJSXString:                             "JSXString",
	NodeJSXExpressionAttributeValue:           "JSXExpressionAttributeValue",
	NodeJSXChildList:                          "JSXChildList",
	NodeJSXText:                               "JSXText",
	NodeJSXExpressionChild:                    "JSXExpressionChild",
	NodeJSXSpreadChild:                        "JSXSpreadChild",
	NodeJSONRoot:                              "JSONRoot",
	NodeJSONObjectValue:                       "JSONObjectValue",
	NodeJSONMemberList:                        "JSONMemberList",
	NodeJSONMember:                            "JSONMember",
	NodeJSONMemberName:                        "JSONMemberName",
	NodeJSONArrayValue:                        "JSONArrayValue",
	NodeJSONArrayElementList:                  "JSONArrayElementList",
	NodeJSONStringValue:                       "JSONStringValue",
	NodeJSONNumberValue:                       "JSONNumberValue",
	NodeJSONBooleanValue:                      "JSONBooleanValue",
	NodeJSONNullValue:                         "JSONNullValue",
}

// kindTexts holds the fixed source text of punctuation and keywords.
var kindTexts = map[Kind]string{
	TokSemicolon:    ";",
	TokComma:        ",",
	TokLParen:       "(",
	TokRParen:       ")",
	TokLCurly:       "{",
	TokRCurly:       "}",
	TokLBrack:       "[",
	TokRBrack:       "]",
	TokLAngle:       "<",
	TokRAngle:       ">",
	TokTilde:        "~",
	TokQuestion:     "?",
	TokQuestion2:    "??",
	TokQuestionDot:  "?.",
	TokAmp:          "&",
	TokPipe:         "|",
	TokPlus:         "+",
	TokPlus2:        "++",
	TokStar:         "*",
	TokStar2:        "**",
	TokSlash:        "/",
	TokCaret:        "^",
	TokPercent:      "%",
	TokDot:          ".",
	TokDot3:         "...",
	TokColon:        ":",
	TokEq:           "=",
	TokEq2:          "==",
	TokEq3:          "===",
	TokFatArrow:     "=>",
	TokBang:         "!",
	TokNeq:          "!=",
	TokNeq2:         "!==",
	TokMinus:        "-",
	TokMinus2:       "--",
	TokLtEq:         "<=",
	TokGtEq:         ">=",
	TokPlusEq:       "+=",
	TokMinusEq:      "-=",
	TokPipeEq:       "|=",
	TokAmpEq:        "&=",
	TokCaretEq:      "^=",
	TokSlashEq:      "/=",
	TokStarEq:       "*=",
	TokPercentEq:    "%=",
	TokStar2Eq:      "**=",
	TokAmp2:         "&&",
	TokPipe2:        "||",
	TokShl:          "<<",
	TokShr:          ">>",
	TokUShr:         ">>>",
	TokShlEq:        "<<=",
	TokShrEq:        ">>=",
	TokUShrEq:       ">>>=",
	TokAmp2Eq:       "&&=",
	TokPipe2Eq:      "||=",
	TokQuestion2Eq:  "??=",
	TokAt:           "@",
	TokHash:         "#",
	TokBacktick:     "`",
	TokDollarCurly:  "${",
	TokBreakKw:      "break",
	TokCaseKw:       "case",
	TokCatchKw:      "catch",
	TokClassKw:      "class",
	TokConstKw:      "const",
	TokContinueKw:   "continue",
	TokDebuggerKw:   "debugger",
	TokDefaultKw:    "default",
	TokDeleteKw:     "delete",
	TokDoKw:         "do",
	TokElseKw:       "else",
	TokEnumKw:       "enum",
	TokExportKw:     "export",
	TokExtendsKw:    "extends",
	TokFalseKw:      "false",
	TokFinallyKw:    "finally",
	TokForKw:        "for",
	TokFunctionKw:   "function",
	TokIfKw:         "if",
	TokInKw:         "in",
	TokInstanceofKw: "instanceof",
	TokImportKw:     "import",
	TokNewKw:        "new",
	TokNullKw:       "null",
	TokReturnKw:     "return",
	TokSuperKw:      "super",
	TokSwitchKw:     "switch",
	TokThisKw:       "this",
	TokThrowKw:      "throw",
	TokTrueKw:       "true",
	TokTryKw:        "try",
	TokTypeofKw:     "typeof",
	TokVarKw:        "var",
	TokVoidKw:       "void",
	TokWhileKw:      "while",
	TokWithKw:       "with",
	TokAbstractKw:   "abstract",
	TokAccessorKw:   "accessor",
	TokAsKw:         "as",
	TokAssertsKw:    "asserts",
	TokAsyncKw:      "async",
	TokAwaitKw:      "await",
	TokDeclareKw:    "declare",
	TokFromKw:       "from",
	TokGetKw:        "get",
	TokGlobalKw:     "global",
	TokImplementsKw: "implements",
	TokInferKw:      "infer",
	TokInterfaceKw:  "interface",
	TokIsKw:         "is",
	TokKeyofKw:      "keyof",
	TokLetKw:        "let",
	TokMetaKw:       "meta",
	TokModuleKw:     "module",
	TokNamespaceKw:  "namespace",
	TokOfKw:         "of",
	TokOutKw:        "out",
	TokOverrideKw:   "override",
	TokPrivateKw:    "private",
	TokProtectedKw:  "protected",
	TokPublicKw:     "public",
	TokReadonlyKw:   "readonly",
	TokSatisfiesKw:  "satisfies",
	TokSetKw:        "set",
	TokStaticKw:     "static",
	TokTargetKw:     "target",
	TokTypeKw:       "type",
	TokUniqueKw:     "unique",
	TokYieldKw:      "yield",
}

var keywordsByText = func() map[string]Kind {
	keywords := make(map[string]Kind)
	for kind := TokBreakKw; kind <= TokYieldKw; kind++ {
		keywords[kindTexts[kind]] = kind
	}
	return keywords
}()

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// Text returns the fixed source text of punctuation and keyword kinds, or
// the empty string for kinds without one.
func (k Kind) Text() string {
	return kindTexts[k]
}

// Describe returns a human readable description used in diagnostics, such as
// "`;`" or "an identifier".
func (k Kind) Describe() string {
	if text := kindTexts[k]; text != "" {
		return "`" + text + "`"
	}
	switch k {
	case TokEOF:
		return "the end of the file"
	case TokIdent:
		return "an identifier"
	case TokNumberLiteral:
		return "a number literal"
	case TokBigIntLiteral:
		return "a bigint literal"
	case TokStringLiteral, TokJSXStringLiteral:
		return "a string literal"
	case TokRegexLiteral:
		return "a regular expression"
	case TokTemplateChunk:
		return "a template chunk"
	case TokJSXText:
		return "JSX text"
	default:
		return k.String()
	}
}

// KeywordKind returns the keyword kind for text, reserved or contextual.
func KeywordKind(text string) (Kind, bool) {
	kind, ok := keywordsByText[text]
	return kind, ok
}

// ReservedKeywordKind returns the keyword kind for text when text is a
// reserved word that lexes as a keyword token.
func ReservedKeywordKind(text string) (Kind, bool) {
	kind, ok := keywordsByText[text]
	if !ok || kind.IsContextualKeyword() {
		return 0, false
	}
	return kind, true
}
