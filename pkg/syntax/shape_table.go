package syntax

// shapes lists the named slots of every fixed-shape node kind. Absent
// optional children occupy an empty slot so that a slot index always maps
// to the same grammar position. List and bogus kinds have no shape.
var shapes = map[Kind][]string{
	NodeModule:                                {"directives", "items", "eof"},
	NodeScript:                                {"directives", "statements", "eof"},
	NodeDirective:                             {"value", "semicolon"},
	NodeBlockStatement:                        {"l_curly", "statements", "r_curly"},
	NodeEmptyStatement:                        {"semicolon"},
	NodeExpressionStatement:                   {"expression", "semicolon"},
	NodeVariableStatement:                     {"declaration", "semicolon"},
	NodeVariableDeclaration:                   {"kind", "declarators"},
	NodeVariableDeclarator:                    {"id", "excl", "type_annotation", "initializer"},
	NodeInitializerClause:                     {"eq", "expression"},
	NodeIfStatement:                           {"if", "l_paren", "test", "r_paren", "consequent", "else_clause"},
	NodeElseClause:                            {"else", "alternate"},
	NodeForStatement:                          {"for", "l_paren", "initializer", "first_semicolon", "test", "second_semicolon", "update", "r_paren", "body"},
	NodeForInStatement:                        {"for", "l_paren", "initializer", "in", "expression", "r_paren", "body"},
	NodeForOfStatement:                        {"for", "await", "l_paren", "initializer", "of", "expression", "r_paren", "body"},
	NodeForVariableDeclaration:                {"kind", "declarator"},
	NodeWhileStatement:                        {"while", "l_paren", "test", "r_paren", "body"},
	NodeDoWhileStatement:                      {"do", "body", "while", "l_paren", "test", "r_paren", "semicolon"},
	NodeReturnStatement:                       {"return", "argument", "semicolon"},
	NodeBreakStatement:                        {"break", "label", "semicolon"},
	NodeContinueStatement:                     {"continue", "label", "semicolon"},
	NodeThrowStatement:                        {"throw", "argument", "semicolon"},
	NodeTryStatement:                          {"try", "body", "catch_clause"},
	NodeTryFinallyStatement:                   {"try", "body", "catch_clause", "finally_clause"},
	NodeCatchClause:                           {"catch", "declaration", "body"},
	NodeCatchDeclaration:                      {"l_paren", "binding", "type_annotation", "r_paren"},
	NodeFinallyClause:                         {"finally", "body"},
	NodeSwitchStatement:                       {"switch", "l_paren", "discriminant", "r_paren", "l_curly", "cases", "r_curly"},
	NodeCaseClause:                            {"case", "test", "colon", "consequent"},
	NodeDefaultClause:                         {"default", "colon", "consequent"},
	NodeLabeledStatement:                      {"label", "colon", "body"},
	NodeDebuggerStatement:                     {"debugger", "semicolon"},
	NodeWithStatement:                         {"with", "l_paren", "object", "r_paren", "body"},
	NodeFunctionDeclaration:                   {"async", "function", "star", "id", "type_parameters", "parameters", "return_type", "body"},
	NodeTsDeclareFunctionDeclaration:          {"async", "function", "star", "id", "type_parameters", "parameters", "return_type", "semicolon"},
	NodeFunctionBody:                          {"l_curly", "directives", "statements", "r_curly"},
	NodeParameters:                            {"l_paren", "items", "r_paren"},
	NodeFormalParameter:                       {"decorators", "binding", "question", "type_annotation", "initializer"},
	NodeRestParameter:                         {"dotdotdot", "binding", "type_annotation"},
	NodeTsPropertyParameter:                   {"modifiers", "formal_parameter"},
	NodeTsThisParameter:                       {"this", "type_annotation"},
	NodeClassDeclaration:                      {"decorators", "abstract", "class", "id", "type_parameters", "extends_clause", "implements_clause", "l_curly", "members", "r_curly"},
	NodeClassExpression:                       {"decorators", "class", "id", "type_parameters", "extends_clause", "implements_clause", "l_curly", "members", "r_curly"},
	NodeExtendsClause:                         {"extends", "super_class", "type_arguments"},
	NodeMethodClassMember:                     {"modifiers", "async", "star", "name", "question", "type_parameters", "parameters", "return_type", "body"},
	NodeTsMethodSignatureClassMember:          {"modifiers", "async", "star", "name", "question", "type_parameters", "parameters", "return_type", "semicolon"},
	NodeGetterClassMember:                     {"modifiers", "get", "name", "l_paren", "r_paren", "return_type", "body"},
	NodeSetterClassMember:                     {"modifiers", "set", "name", "l_paren", "parameter", "r_paren", "body"},
	NodePropertyClassMember:                   {"modifiers", "name", "property_annotation", "type_annotation", "value", "semicolon"},
	NodeConstructorClassMember:                {"modifiers", "name", "parameters", "body"},
	NodeStaticInitializationBlockClassMember:  {"static", "l_curly", "statements", "r_curly"},
	NodeEmptyClassMember:                      {"semicolon"},
	NodeDecorator:                             {"at", "expression"},
	NodeImport:                                {"import", "type", "default_specifier", "comma", "specifiers", "from", "source", "attributes", "semicolon"},
	NodeNamespaceImportSpecifier:              {"star", "as", "local"},
	NodeNamedImportSpecifiers:                 {"l_curly", "specifiers", "r_curly"},
	NodeNamedImportSpecifier:                  {"type", "name", "as", "local"},
	NodeImportAttributes:                      {"with", "l_curly", "attributes", "r_curly"},
	NodeImportAttribute:                       {"key", "colon", "value"},
	NodeExport:                                {"decorators", "export", "clause"},
	NodeExportDefaultDeclarationClause:        {"default", "declaration"},
	NodeExportDefaultExpressionClause:         {"default", "expression", "semicolon"},
	NodeExportNamedClause:                     {"type", "l_curly", "specifiers", "r_curly", "semicolon"},
	NodeExportNamedFromClause:                 {"type", "l_curly", "specifiers", "r_curly", "from", "source", "attributes", "semicolon"},
	NodeExportNamedSpecifier:                  {"type", "local", "as", "exported"},
	NodeExportFromClause:                      {"type", "star", "export_as", "from", "source", "attributes", "semicolon"},
	NodeExportAsClause:                        {"as", "exported"},
	NodeIdentifierExpression:                  {"name"},
	NodeThisExpression:                        {"this"},
	NodeSuperExpression:                       {"super"},
	NodeNumberLiteralExpression:               {"value"},
	NodeBigIntLiteralExpression:               {"value"},
	NodeStringLiteralExpression:               {"value"},
	NodeBooleanLiteralExpression:              {"value"},
	NodeNullLiteralExpression:                 {"value"},
	NodeRegexLiteralExpression:                {"value"},
	NodeTemplateExpression:                    {"tag", "type_arguments", "l_tick", "elements", "r_tick"},
	NodeTemplateChunkElement:                  {"chunk"},
	NodeTemplateElement:                       {"dollar_curly", "expression", "r_curly"},
	NodeArrayExpression:                       {"l_brack", "elements", "r_brack"},
	NodeArrayHole:                             {},
	NodeSpread:                                {"dotdotdot", "argument"},
	NodeObjectExpression:                      {"l_curly", "members", "r_curly"},
	NodePropertyObjectMember:                  {"name", "colon", "value"},
	NodeShorthandPropertyObjectMember:         {"name", "initializer"},
	NodeMethodObjectMember:                    {"async", "star", "name", "type_parameters", "parameters", "return_type", "body"},
	NodeGetterObjectMember:                    {"get", "name", "l_paren", "r_paren", "return_type", "body"},
	NodeSetterObjectMember:                    {"set", "name", "l_paren", "parameter", "r_paren", "body"},
	NodeLiteralMemberName:                     {"value"},
	NodeComputedMemberName:                    {"l_brack", "expression", "r_brack"},
	NodePrivateName:                           {"hash", "value"},
	NodeParenthesizedExpression:               {"l_paren", "expression", "r_paren"},
	NodeSequenceExpression:                    {"left", "comma", "right"},
	NodeAssignmentExpression:                  {"left", "operator", "right"},
	NodeConditionalExpression:                 {"test", "question", "consequent", "colon", "alternate"},
	NodeBinaryExpression:                      {"left", "operator", "right"},
	NodeLogicalExpression:                     {"left", "operator", "right"},
	NodeUnaryExpression:                       {"operator", "argument"},
	NodePreUpdateExpression:                   {"operator", "operand"},
	NodePostUpdateExpression:                  {"operand", "operator"},
	NodeAwaitExpression:                       {"await", "argument"},
	NodeYieldExpression:                       {"yield", "star", "argument"},
	NodeCallExpression:                        {"callee", "optional_chain", "type_arguments", "arguments"},
	NodeCallArguments:                         {"l_paren", "args", "r_paren"},
	NodeNewExpression:                         {"new", "callee", "type_arguments", "arguments"},
	NodeStaticMemberExpression:                {"object", "operator", "member"},
	NodeComputedMemberExpression:              {"object", "optional_chain", "l_brack", "member", "r_brack"},
	NodeFunctionExpression:                    {"async", "function", "star", "id", "type_parameters", "parameters", "return_type", "body"},
	NodeArrowFunctionExpression:               {"async", "type_parameters", "parameters", "return_type", "fat_arrow", "body"},
	NodeImportCallExpression:                  {"import", "arguments"},
	NodeImportMetaExpression:                  {"import", "dot", "meta"},
	NodeNewTargetExpression:                   {"new", "dot", "target"},
	NodeIdentifierBinding:                     {"name"},
	NodeArrayBindingPattern:                   {"l_brack", "elements", "r_brack"},
	NodeArrayBindingPatternElement:            {"pattern", "initializer"},
	NodeArrayBindingPatternRestElement:        {"dotdotdot", "pattern"},
	NodeObjectBindingPattern:                  {"l_curly", "properties", "r_curly"},
	NodeObjectBindingPatternProperty:          {"member", "colon", "pattern", "initializer"},
	NodeObjectBindingPatternShorthandProperty: {"identifier", "initializer"},
	NodeObjectBindingPatternRest:              {"dotdotdot", "binding"},
	NodeTsTypeAnnotation:                      {"colon", "ty"},
	NodeTsReturnTypeAnnotation:                {"colon", "ty"},
	NodeTsTypeParameters:                      {"l_angle", "items", "r_angle"},
	NodeTsTypeParameter:                       {"modifiers", "name", "constraint", "default"},
	NodeTsTypeConstraintClause:                {"extends", "ty"},
	NodeTsDefaultTypeClause:                   {"eq", "ty"},
	NodeTsTypeArguments:                       {"l_angle", "items", "r_angle"},
	NodeTsReferenceType:                       {"name", "type_arguments"},
	NodeTsQualifiedName:                       {"left", "dot", "right"},
	NodeTsArrayType:                           {"element_type", "l_brack", "r_brack"},
	NodeTsIndexedAccessType:                   {"object_type", "l_brack", "index_type", "r_brack"},
	NodeTsUnionType:                           {"leading_separator", "types"},
	NodeTsIntersectionType:                    {"leading_separator", "types"},
	NodeTsTupleType:                           {"l_brack", "elements", "r_brack"},
	NodeTsNamedTupleTypeElement:               {"dotdotdot", "name", "question", "colon", "ty"},
	NodeTsRestTupleTypeElement:                {"dotdotdot", "ty"},
	NodeTsOptionalTupleTypeElement:            {"ty", "question"},
	NodeTsObjectType:                          {"l_curly", "members", "r_curly"},
	NodeTsPropertySignatureTypeMember:         {"readonly", "name", "optional", "type_annotation", "separator"},
	NodeTsMethodSignatureTypeMember:           {"name", "optional", "type_parameters", "parameters", "return_type", "separator"},
	NodeTsIndexSignatureTypeMember:            {"readonly", "l_brack", "parameter", "r_brack", "type_annotation", "separator"},
	NodeTsIndexSignatureParameter:             {"binding", "type_annotation"},
	NodeTsCallSignatureTypeMember:             {"type_parameters", "parameters", "return_type", "separator"},
	NodeTsConstructSignatureTypeMember:        {"new", "type_parameters", "parameters", "type_annotation", "separator"},
	NodeTsFunctionType:                        {"type_parameters", "parameters", "fat_arrow", "return_type"},
	NodeTsConstructorType:                     {"abstract", "new", "type_parameters", "parameters", "fat_arrow", "return_type"},
	NodeTsParenthesizedType:                   {"l_paren", "ty", "r_paren"},
	NodeTsLiteralType:                         {"minus", "literal"},
	NodeTsTypeofType:                          {"typeof", "expression_name", "type_arguments"},
	NodeTsTypeOperatorType:                    {"operator", "ty"},
	NodeTsThisType:                            {"this"},
	NodeTsConditionalType:                     {"check_type", "extends", "extends_type", "question", "true_type", "colon", "false_type"},
	NodeTsInferType:                           {"infer", "name", "constraint"},
	NodeTsMappedType:                          {"l_curly", "readonly_sign", "readonly_modifier", "l_brack", "property_name", "in", "keys_type", "as", "name_type", "r_brack", "optional_sign", "optional_modifier", "type_annotation", "semicolon", "r_curly"},
	NodeTsTypePredicate:                       {"asserts", "parameter_name", "is", "ty"},
	NodeTsAsExpression:                        {"expression", "as", "ty"},
	NodeTsSatisfiesExpression:                 {"expression", "satisfies", "ty"},
	NodeTsNonNullAssertionExpression:          {"expression", "excl"},
	NodeTsTypeAliasDeclaration:                {"type", "id", "type_parameters", "eq", "ty", "semicolon"},
	NodeTsInterfaceDeclaration:                {"interface", "id", "type_parameters", "extends_clause", "l_curly", "members", "r_curly"},
	NodeTsExtendsClause:                       {"extends", "types"},
	NodeTsImplementsClause:                    {"implements", "types"},
	NodeTsEnumDeclaration:                     {"const", "enum", "id", "l_curly", "members", "r_curly"},
	NodeTsEnumMember:                          {"name", "initializer"},
	NodeTsDeclareStatement:                    {"declare", "declaration"},
	NodeTsModuleDeclaration:                   {"keyword", "name", "body"},
	NodeTsModuleBlock:                         {"l_curly", "items", "r_curly"},
	NodeJSXTagExpression:                      {"tag"},
	NodeJSXElement:                            {"opening", "children", "closing"},
	NodeJSXOpeningElement:                     {"l_angle", "name", "type_arguments", "attributes", "r_angle"},
	NodeJSXClosingElement:                     {"l_angle", "slash", "name", "r_angle"},
	NodeJSXSelfClosingElement:                 {"l_angle", "name", "type_arguments", "attributes", "slash", "r_angle"},
	NodeJSXFragment:                           {"opening", "children", "closing"},
	NodeJSXOpeningFragment:                    {"l_angle", "r_angle"},
	NodeJSXClosingFragment:                    {"l_angle", "slash", "r_angle"},
	NodeJSXName:                               {"value"},
	NodeJSXMemberName:                         {"object", "dot", "member"},
	NodeJSXNamespaceName:                      {"namespace", "colon", "name"},
	NodeJSXAttribute:                          {"name", "initializer"},
	NodeJSXAttributeInitializerClause:         {"eq", "value"},
	NodeJSXSpreadAttribute:                    {"l_curly", "dotdotdot", "argument", "r_curly"},
	NodeJSXString:                             {"value"},
	NodeJSXExpressionAttributeValue:           {"l_curly", "expression", "r_curly"},
	NodeJSXText:                               {"value"},
	NodeJSXExpressionChild:                    {"l_curly", "expression", "r_curly"},
	NodeJSXSpreadChild:                        {"l_curly", "dotdotdot", "expression", "r_curly"},
	NodeJSONRoot:                              {"value", "eof"},
	NodeJSONObjectValue:                       {"l_curly", "members", "r_curly"},
	NodeJSONMember:                            {"name", "colon", "value"},
	NodeJSONMemberName:                        {"value"},
	NodeJSONArrayValue:                        {"l_brack", "elements", "r_brack"},
	NodeJSONStringValue:                       {"value"},
	NodeJSONNumberValue:                       {"value"},
	NodeJSONBooleanValue:                      {"value"},
	NodeJSONNullValue:                         {"value"},
}
