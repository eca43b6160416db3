package grammar

// Language group names. A group is a bucket of languages that share one
// structural grammar.
const (
	GroupPython = "python"
	GroupWeb    = "web"
	GroupSystem = "system"
	GroupData   = "data"
)

// corePatterns defines the import/class/function grammars per language
// group. Each alternation encodes several language-specific sub-grammars,
// distinguished by numbered capture-group names: the extractor takes the
// first non-empty group whose name carries the right prefix.
var corePatterns = map[Category]map[string]string{
	CategoryImport: {
		GroupPython: `(?m)^(?:from\s+(?P<module>[a-zA-Z0-9_\.]+)\s+import\s+(?P<imports>[^#\n]+)|import\s+(?P<module2>[a-zA-Z0-9_\.]+(?:\s*,\s*[a-zA-Z0-9_\.]+)*))(?:\s*#[^\n]*)?$`,

		GroupWeb: `(?:` +
			`import\s+.*?from\s+['"](?P<module>[^'"]+)['"]` + // ES6 import
			`|require\s*\(['"](?P<module2>[^'"]+)['"]\)` + // CommonJS require
			`|import\s+(?:static\s+)?(?P<module3>[a-zA-Z0-9_\.]+(?:\.\*)?)\s*;` + // Java import
			`|require\s+['"](?P<module4>[^'"]+)['"]` + // Ruby require
			`|import\s+['"](?P<module5>[^'"]+)['"]` + // side-effect import
			`|package\s+(?P<module6>[a-zA-Z0-9_\.]+);` + // Java/Kotlin package
			`)`,

		GroupSystem: `(?:` +
			`#include\s*[<"](?P<module>[^>"]+)[>"]` + // C/C++ include
			`|using\s+(?:static\s+)?(?P<module2>[a-zA-Z0-9_\.]+)\s*;` + // C# using
			`|namespace\s+(?P<module3>[a-zA-Z0-9_\\]+)` + // namespace
			`|#import\s*[<"](?P<module5>[^>"]+)[>"]` + // Objective-C import
			`|import\s+(?:"(?P<module6>[^"]+)"|(?P<module7>[a-zA-Z0-9_/\.]+))` + // Go/Swift import
			`|use\s+(?P<module8>[a-zA-Z0-9_:]+)(?:::\{(?P<imports>[^}]+)\})?;` + // Rust use
			`)`,

		GroupData: `(?:` +
			`library\s*\((?P<module>[^)]+)\)` + // R library
			`|source\s*\(['"](?P<module2>[^'"]+)['"]` + // R source
			`|using\s+(?P<module3>[a-zA-Z0-9_\.]+)` + // Julia using
			`|import\s+(?P<module4>[a-zA-Z0-9_\.]+)` + // Julia import
			`)`,
	},

	CategoryClass: {
		GroupPython: `(?:@\w+(?:\(.*?\))?\s+)*class\s+(?P<name>\w+)(?:\((?P<base>[^)]+)\))?\s*:`,

		GroupWeb: `(?:` +
			`(?:export\s+)?(?:abstract\s+)?class\s+(?P<name>\w+)(?:\s*<[^>]+>)?(?:\s+(?:extends|implements)\s+(?P<base>[^{<]+))?\s*\{` + // standard class
			`|(?:export\s+)?(?:const|let|var)\s+(?P<name2>\w+)\s*=\s*class(?:\s+extends\s+(?P<base2>[^{]+))?\s*\{` + // class expression
			`|(?:public|private|protected)\s+(?:abstract\s+)?class\s+(?P<name4>\w+)(?:\s+extends\s+(?P<base4>[^{]+?))?(?:\s+implements\s+(?P<impl>[^{]+))?\s*\{` + // Java class
			`)`,

		GroupSystem: `(?:` +
			`(?:(?:public|private|protected|internal)\s+)*(?:abstract\s+)?(?:partial\s+)?(?:sealed\s+)?(?:class|struct|enum|union)\s+(?P<name>\w+)(?:\s*(?::\s*|extends\s+|implements\s+)(?P<base>[^{;]+))?\s*\{` + // C++/C# class
			`|(?:@interface|@implementation)\s+(?P<name2>\w+)(?:\s*:\s*(?P<base2>[^{\n]+))?` + // Objective-C
			`|type\s+(?P<name3>\w+)\s+struct\s*\{` + // Go struct
			`|type\s+(?P<name4>\w+)\s+interface\s*\{` + // Go interface
			`|(?:pub\s+)?(?:struct|enum|trait|union)\s+(?P<name5>\w+)(?:<[^>]+>)?\s*(?:where\s+[^{]+)?\{` + // Rust type
			`|impl(?:<[^>]+>)?\s+(?P<name6>\w+)(?:<[^>]+>)?(?:\s+for\s+(?P<fortype>[^{]+))?\s*\{` + // Rust impl
			`)`,

		GroupData: `(?:` +
			`CREATE\s+(?:OR\s+REPLACE\s+)?TABLE\s+(?P<name>[a-zA-Z0-9_\.]+)` +
			`|CREATE\s+(?:OR\s+REPLACE\s+)?VIEW\s+(?P<name2>[a-zA-Z0-9_\.]+)` +
			`|CREATE\s+(?:OR\s+REPLACE\s+)?FUNCTION\s+(?P<name3>[a-zA-Z0-9_\.]+)` +
			`|CREATE\s+(?:OR\s+REPLACE\s+)?PROCEDURE\s+(?P<name4>[a-zA-Z0-9_\.]+)` +
			`|(?:setClass|setRefClass)\s*\(['"](?P<name5>[^'"]+)['"]` + // R class
			`|struct\s+(?P<name6>\w+)` + // Julia struct
			`|abstract\s+type\s+(?P<name7>\w+)` + // Julia type
			`)`,
	},

	CategoryFunction: {
		GroupPython: `(?:@\w+(?:\(.*?\))?\s+)*def\s+(?P<name>\w+)\s*\((?P<params>[^)]*)\)(?:\s*->\s*(?P<return>[^:#]+))?\s*:`,

		GroupWeb: `(?:` +
			`(?:export\s+)?(?:async\s+)?function\s*\*?\s*(?P<name>\w+)\s*(?:<[^>]+>)?\s*\((?P<params>[^)]*)\)(?:\s*:\s*(?P<return>[^{=]+))?\s*\{` + // function declaration
			`|(?:export\s+)?(?:const|let|var)\s+(?P<name2>\w+)\s*=\s*(?:async\s+)?(?:function\s*\*?|\([^)]*\)\s*=>)` + // expression/arrow
			`|(?:public|private|protected)\s+(?:static\s+)?(?:final\s+)?[\w<>\[\]\.]+\s+(?P<name4>\w+)\s*\((?P<params3>[^)]*)\)\s*(?:throws\s+[^{]+)?\{` + // Java method
			`|(?:public\s+|private\s+|protected\s+)?(?:override\s+)?fun\s+(?P<name5>\w+)\s*\((?P<params4>[^)]*)\)(?:\s*:\s*(?P<return3>[^{]+))?\s*\{` + // Kotlin function
			`|def\s+(?P<name6>\w+)(?:\((?P<params5>[^)]*)\))?` + // Ruby method
			`)`,

		GroupSystem: `(?:` +
			`func\s+(?:\([^)]*\)\s*)?(?P<name3>\w+)\s*\((?P<params2>[^)]*)\)(?:\s*\([^)]*\)|\s*(?:throws|rethrows))?(?:\s*->\s*(?P<return2>[^{]+))?[^{;\n]*\{` + // Go/Swift function
			`|(?:pub(?:\([^)]+\))?\s+)?(?:async\s+)?fn\s+(?P<name5>\w+)(?:<[^>]+>)?\s*\((?P<params3>[^)]*)\)(?:\s*->\s*(?P<return3>[^{]+))?\s*(?:where\s+[^{]+)?\{` + // Rust function
			`|(?:(?:public|private|protected|internal|static|virtual|override|inline)\s+)*[\w:<>\*&~\[\]]+\s+(?P<name>\w+)\s*\((?P<params>[^)]*)\)(?:\s*(?:const|override|final|noexcept))?\s*\{` + // C++/C# method
			`)`,

		GroupData: `(?:` +
			`CREATE\s+(?:OR\s+REPLACE\s+)?FUNCTION\s+(?P<name>[a-zA-Z0-9_\.]+)\s*\((?P<params>[^)]*)\)` +
			`|CREATE\s+(?:OR\s+REPLACE\s+)?PROCEDURE\s+(?P<name2>[a-zA-Z0-9_\.]+)\s*\((?P<params2>[^)]*)\)` +
			`|(?P<name3>\w+)\s*<-\s*function\s*\((?P<params3>[^)]*)\)` + // R function
			`|function\s+(?P<name4>\w+)\s*\((?P<params4>[^)]*)\)` + // Julia function
			`)`,
	},
}

// commonPatterns is the cross-cutting set applied to every file regardless
// of language group.
var commonPatterns = map[string]string{
	"interface":        `(?:export\s+)?interface\s+(?P<name>\w+)(?:\s+extends\s+(?P<base>[^{]+))?\s*\{`,
	"error":            `try\s*\{(?:[^{}]|\{[^{}]*\})*\}\s*catch\s*\((?P<err>\w+)(?:\s*:\s*(?P<type>[^)]+))?\)`,
	"jsx_component":    `<(?P<name>[A-Z]\w*)(?:\s[^<>]*)?>`,
	"react_hook":       `\buse[A-Z]\w+\s*\(`,
	"styled_component": "(?:const\\s+)?(?P<name>\\w+)\\s*=\\s*styled(?:\\.(?P<element>\\w+)|\\([\\w.]+\\))`",

	// Route declarations.
	"flask_route":   `@(?:app|blueprint)\.route\s*\(['"](?P<route>[^'"]+)['"](?:\s*,\s*methods=(?P<methods>\[[^\]]+\]))?\)`,
	"django_url":    `path\s*\(\s*['"](?P<route>[^'"]+)['"](?:\s*,\s*(?P<view>\w+(?:\.\w+)*))?`,
	"fastapi_route": `@(?:app|router)\.(?:get|post|put|delete|patch|options|head)\s*\(['"](?P<route>[^'"]+)['"]`,
	"api_endpoint":  `(?:GET|POST|PUT|DELETE|PATCH)\s+['"](?P<endpoint>/[^'"]+)['"]`,

	// Framework-specific class shapes.
	"django_model": `class\s+(?P<name>\w+)\s*\(\s*models\.Model\s*\)\s*:`,
	"django_view":  `class\s+(?P<name>\w+)\s*\(\s*(?P<base>View|ListView|DetailView|CreateView|UpdateView|DeleteView|TemplateView)\s*\)\s*:`,

	// Testing.
	"test_function":    `(?:test|it|describe)\s*\(\s*['"](?P<desc>[^'"]+)['"]`,
	"assert_statement": `(?:assert|expect)(?:\.\w+|\([^)]*\))`,

	// Comment markers.
	"todo_comment":  `(?m)(?://|#|/\*)\s*TODO\s*(?::|-)?\s*(?P<todo>.*?)(?:\*/)?$`,
	"fixme_comment": `(?m)(?://|#|/\*)\s*FIXME\s*(?::|-)?\s*(?P<fixme>.*?)(?:\*/)?$`,
}

// extraPatterns holds language-specific supplements keyed by set name. The
// extractor applies the set matching the resolved language (sql/docker sets
// are compiled case-insensitively).
var extraPatterns = map[string]map[string]string{
	"go": {
		"struct":    `type\s+(?P<name>\w+)\s+struct\s*\{`,
		"interface": `type\s+(?P<name>\w+)\s+interface\s*\{`,
		"method":    `func\s+\(\s*(?P<receiver>\w+)\s+(?P<receivertype>\*?\w+)\s*\)\s+(?P<name>\w+)\s*\(`,
		"goroutine": `go\s+(?P<fn>\w+(?:\.\w+)*\([^)]*\))`,
		"channel":   `(?:make\s*\(\s*chan\s+(?P<type>[^),]+)|<-\s*chan\s+(?P<type2>[^{,)]+)|chan\s*<-\s*(?P<type3>[^{,)]+))`,
	},

	"rust": {
		"struct":   `(?:pub\s+)?struct\s+(?P<name>\w+)(?:<[^>]+>)?\s*[\{\(;]`,
		"enum":     `(?:pub\s+)?enum\s+(?P<name>\w+)(?:<[^>]+>)?\s*\{`,
		"trait":    `(?:pub\s+)?trait\s+(?P<name>\w+)(?:<[^>]+>)?\s*\{`,
		"impl":     `impl(?:<[^>]+>)?\s+(?P<fortype>[^{]+)\s*\{`,
		"macro":    `(?P<name>\w+)!\s*[\(\[\{]`,
		"lifetime": `<\s*'(?P<lifetime>\w+)`,
		"unsafe":   `unsafe\s*\{`,
		"derive":   `#\[derive\((?P<traits>[^)]+)\)\]`,
	},

	"sql": {
		"create_table": `CREATE\s+(?:OR\s+REPLACE\s+)?TABLE\s+(?P<name>[a-zA-Z0-9_\.]+)\s*\(`,
		"create_view":  `CREATE\s+(?:OR\s+REPLACE\s+)?VIEW\s+(?P<name>[a-zA-Z0-9_\.]+)\s+AS`,
		"create_index": `CREATE\s+(?:UNIQUE\s+)?INDEX\s+(?P<name>[a-zA-Z0-9_\.]+)\s+ON`,
		"select":       `SELECT\s+(?P<columns>.+?)\s+FROM\s+(?P<table>[a-zA-Z0-9_\.]+)`,
		"join":         `(?:INNER|LEFT|RIGHT|FULL|CROSS)?\s*JOIN\s+(?P<table>[a-zA-Z0-9_\.]+)(?:\s+AS\s+(?P<alias>\w+))?\s+ON\s+(?P<condition>[^;\n]+)`,
		"transaction":  `(?:BEGIN|START)\s+TRANSACTION`,
	},

	"graphql": {
		"query":     `(?:query|mutation)\s+(?P<name>\w+)(?:\((?P<params>[^)]*)\))?\s*\{`,
		"type":      `type\s+(?P<name>\w+)(?:\s+implements\s+(?P<implements>\w+))?\s*\{`,
		"interface": `interface\s+(?P<name>\w+)\s*\{`,
		"input":     `input\s+(?P<name>\w+)\s*\{`,
		"enum":      `enum\s+(?P<name>\w+)\s*\{`,
		"directive": `directive\s+@(?P<name>\w+)(?:\((?P<params>[^)]*)\))?\s+on\s+(?P<locations>.+)`,
	},

	"docker": {
		"from":       `FROM\s+(?P<image>\S+)(?:\s+AS\s+(?P<stage>\w+))?`,
		"run":        `(?m)^RUN\s+(?P<cmd>.+)`,
		"copy":       `COPY\s+(?:--from=(?P<from>\w+)\s+)?(?P<src>\S+)\s+(?P<dest>.+)`,
		"env":        `ENV\s+(?P<key>\w+)(?:=|\s+)(?P<value>\S+)`,
		"expose":     `EXPOSE\s+(?P<ports>[\d\s]+)`,
		"volume":     `VOLUME\s+(?P<dirs>.*)`,
		"cmd":        `(?m)^CMD\s+(?P<cmd>.*)`,
		"entrypoint": `ENTRYPOINT\s+(?P<entrypoint>.*)`,
	},

	"unity": {
		"component": `(?:public\s+)?class\s+(?P<name>\w+)\s*:\s*(?:MonoBehaviour|ScriptableObject|EditorWindow)`,
		"lifecycle": `(?:private\s+|protected\s+|public\s+)?(?:virtual\s+)?(?:override\s+)?void\s+(?P<name>Awake|Start|Update|FixedUpdate|LateUpdate|OnEnable|OnDisable|OnDestroy|OnTriggerEnter|OnTriggerExit|OnCollisionEnter|OnCollisionExit|OnGUI)\s*\([^)]*\)`,
		"attribute": `\[\s*(?:SerializeField|Header|Tooltip|Range|RequireComponent|ExecuteInEditMode|CreateAssetMenu|MenuItem)(?:\s*\(\s*(?P<params>[^)]+)\s*\))?\s*\]`,
		"event":     `(?:public\s+|private\s+|protected\s+)?UnityEvent\s*<\s*(?P<type>[^>]*)\s*>\s+(?P<name>\w+)`,
	},
}
