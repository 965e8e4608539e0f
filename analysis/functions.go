package analysis

import (
	"slices"
	"strconv"
	"strings"
)

// Function describes a built-in Cypher function.
type Function struct {
	// Name is the qualified name in its documented casing.
	Name string

	// Params are the parameters as "name :: TYPE". The last Optional of
	// them may be omitted.
	Params   []string
	Optional int

	// Variadic functions repeat their last parameter.
	Variadic bool

	Returns   string
	Aggregate bool
	Doc       string
}

// MinArgs is the number of required arguments.
func (f *Function) MinArgs() int {
	return len(f.Params) - f.Optional
}

// MaxArgs is the largest accepted argument count, or -1 when unbounded.
func (f *Function) MaxArgs() int {
	if f.Variadic {
		return -1
	}

	return len(f.Params)
}

// Accepts reports whether n arguments are valid.
func (f *Function) Accepts(n int) bool {
	return n >= f.MinArgs() && (f.Variadic || n <= f.MaxArgs())
}

// Signature renders the function as `name(params) :: RETURNS`.
func (f *Function) Signature() string {
	var b strings.Builder

	b.WriteString(f.Name)
	b.WriteByte('(')

	required := f.MinArgs()

	for i, p := range f.Params {
		switch {
		case i >= required && i == 0:
			b.WriteString("[" + p + "]")
		case i >= required:
			b.WriteString("[, " + p + "]")
		case i > 0:
			b.WriteString(", " + p)
		default:
			b.WriteString(p)
		}
	}

	if f.Variadic {
		b.WriteString("...")
	}

	b.WriteString(") :: ")
	b.WriteString(f.Returns)

	return b.String()
}

func (f *Function) arity() string {
	minArgs, maxArgs := f.MinArgs(), f.MaxArgs()

	switch {
	case maxArgs < 0:
		return "at least " + arguments(minArgs)
	case minArgs == maxArgs:
		return arguments(minArgs)
	default:
		return strconv.Itoa(minArgs) + " to " + arguments(maxArgs)
	}
}

func arguments(n int) string {
	switch n {
	case 0:
		return "no arguments"
	case 1:
		return "1 argument"
	default:
		return strconv.Itoa(n) + " arguments"
	}
}

func fn(name, returns, doc string, params ...string) *Function {
	return &Function{Name: name, Params: params, Returns: returns, Doc: doc}
}

func agg(name, returns, doc string, params ...string) *Function {
	f := fn(name, returns, doc, params...)
	f.Aggregate = true

	return f
}

func (f *Function) optional(n int) *Function {
	f.Optional = n

	return f
}

func (f *Function) variadic() *Function {
	f.Variadic = true

	return f
}

// temporal returns the constructor and clock functions shared by the
// temporal types.
func temporal(kind, returns string) []*Function {
	value := "input :: ANY"
	tz := "timezone :: ANY"

	return []*Function{
		fn(kind, returns, "Creates a "+returns+" instant.", value).optional(1),
		fn(kind+".realtime", returns, "Returns the current "+returns+" instant using the realtime clock.", tz).optional(1),
		fn(kind+".statement", returns, "Returns the current "+returns+" instant using the statement clock.", tz).optional(1),
		fn(kind+".transaction", returns, "Returns the current "+returns+" instant using the transaction clock.", tz).optional(1),
		fn(kind+".truncate", returns, "Truncates the given temporal value to a "+returns+" instant using the specified unit.",
			"unit :: STRING", value, "fields :: MAP").optional(1),
	}
}

var builtins = slices.Concat(
	[]*Function{
		// Aggregating functions.
		agg("avg", "INTEGER | FLOAT | DURATION", "Returns the average of a set of values.", "input :: INTEGER | FLOAT | DURATION"),
		agg("collect", "LIST<ANY>", "Returns a list containing the values returned by an expression.", "input :: ANY"),
		agg("count", "INTEGER", "Returns the number of values or rows.", "input :: ANY"),
		agg("max", "ANY", "Returns the maximum value in a set of values.", "input :: ANY"),
		agg("min", "ANY", "Returns the minimum value in a set of values.", "input :: ANY"),
		agg("percentileCont", "FLOAT", "Returns the percentile of a value over a group using linear interpolation.",
			"input :: FLOAT", "percentile :: FLOAT"),
		agg("percentileDisc", "INTEGER | FLOAT", "Returns the nearest INTEGER or FLOAT value to the given percentile over a group using a rounding method.",
			"input :: INTEGER | FLOAT", "percentile :: FLOAT"),
		agg("stDev", "FLOAT", "Returns the standard deviation for the given value over a group for a sample of a population.", "input :: FLOAT"),
		agg("stDevP", "FLOAT", "Returns the standard deviation for the given value over a group for an entire population.", "input :: FLOAT"),
		agg("sum", "INTEGER | FLOAT | DURATION", "Returns the sum of a set of numeric values.", "input :: INTEGER | FLOAT | DURATION"),

		// Predicate functions.
		fn("isEmpty", "BOOLEAN", "Checks whether a LIST, MAP or STRING is empty.", "input :: LIST<ANY> | MAP | STRING"),
		fn("isNaN", "BOOLEAN", "Returns whether the given number is NaN.", "input :: INTEGER | FLOAT"),

		// Scalar functions.
		fn("char_length", "INTEGER", "Returns the number of Unicode characters in a STRING.", "input :: STRING"),
		fn("character_length", "INTEGER", "Returns the number of Unicode characters in a STRING.", "input :: STRING"),
		fn("coalesce", "ANY", "Returns the first non-null value in a list of expressions.", "input :: ANY").variadic(),
		fn("elementId", "STRING", "Returns the element id of a NODE or RELATIONSHIP.", "input :: NODE | RELATIONSHIP"),
		fn("endNode", "NODE", "Returns the end NODE of a RELATIONSHIP.", "input :: RELATIONSHIP"),
		fn("head", "ANY", "Returns the first element in a LIST<ANY>.", "list :: LIST<ANY>"),
		fn("id", "INTEGER", "Returns the id of a NODE or RELATIONSHIP.", "input :: NODE | RELATIONSHIP"),
		fn("last", "ANY", "Returns the last element in a LIST<ANY>.", "list :: LIST<ANY>"),
		fn("length", "INTEGER", "Returns the length of a PATH.", "input :: PATH"),
		fn("nullIf", "ANY", "Returns null if the two given parameters are equivalent, otherwise returns the value of the first parameter.",
			"v1 :: ANY", "v2 :: ANY"),
		fn("properties", "MAP", "Returns a MAP containing all the properties of a NODE, RELATIONSHIP or MAP.", "input :: MAP | NODE | RELATIONSHIP"),
		fn("randomUUID", "STRING", "Generates a random UUID."),
		fn("size", "INTEGER", "Returns the number of items in a LIST<ANY> or the number of Unicode characters in a STRING.",
			"input :: STRING | LIST<ANY>"),
		fn("startNode", "NODE", "Returns the start NODE of a RELATIONSHIP.", "input :: RELATIONSHIP"),
		fn("timestamp", "INTEGER", "Returns the number of milliseconds since midnight, January 1, 1970 UTC."),
		fn("toBoolean", "BOOLEAN", "Converts a STRING, INTEGER or BOOLEAN value to a BOOLEAN value.", "input :: STRING | INTEGER | BOOLEAN"),
		fn("toBooleanOrNull", "BOOLEAN", "Converts a value to a BOOLEAN value, or null if the value cannot be converted.", "input :: ANY"),
		fn("toFloat", "FLOAT", "Converts a STRING, INTEGER or FLOAT value to a FLOAT value.", "input :: STRING | INTEGER | FLOAT"),
		fn("toFloatOrNull", "FLOAT", "Converts a value to a FLOAT value, or null if the value cannot be converted.", "input :: ANY"),
		fn("toInteger", "INTEGER", "Converts a BOOLEAN, STRING, INTEGER or FLOAT value to an INTEGER value.",
			"input :: BOOLEAN | STRING | INTEGER | FLOAT"),
		fn("toIntegerOrNull", "INTEGER", "Converts a value to an INTEGER value, or null if the value cannot be converted.", "input :: ANY"),
		fn("type", "STRING", "Returns a STRING representation of the RELATIONSHIP type.", "input :: RELATIONSHIP"),
		fn("valueType", "STRING", "Returns a STRING representation of the most precise value type that the given expression evaluates to.",
			"input :: ANY"),

		// List functions.
		fn("keys", "LIST<STRING>", "Returns a LIST<STRING> containing the property names of a NODE, RELATIONSHIP or MAP.",
			"input :: NODE | RELATIONSHIP | MAP"),
		fn("labels", "LIST<STRING>", "Returns a LIST<STRING> containing the labels of a NODE.", "input :: NODE"),
		fn("nodes", "LIST<NODE>", "Returns a LIST<NODE> containing all the NODE values in a PATH.", "input :: PATH"),
		fn("range", "LIST<INTEGER>", "Returns a LIST<INTEGER> comprising all INTEGER values within a specified range.",
			"start :: INTEGER", "end :: INTEGER", "step :: INTEGER").optional(1),
		fn("relationships", "LIST<RELATIONSHIP>", "Returns a LIST<RELATIONSHIP> containing all the RELATIONSHIP values in a PATH.",
			"input :: PATH"),
		fn("reverse", "STRING | LIST<ANY>", "Returns a STRING or LIST<ANY> in which the order of all characters or elements are reversed.",
			"input :: STRING | LIST<ANY>"),
		fn("tail", "LIST<ANY>", "Returns all but the first element in a LIST<ANY>.", "input :: LIST<ANY>"),
		fn("toBooleanList", "LIST<BOOLEAN>", "Converts a LIST<ANY> of values to a LIST<BOOLEAN> values.", "input :: LIST<ANY>"),
		fn("toFloatList", "LIST<FLOAT>", "Converts a LIST<ANY> to a LIST<FLOAT> values.", "input :: LIST<ANY>"),
		fn("toIntegerList", "LIST<INTEGER>", "Converts a LIST<ANY> to a LIST<INTEGER> values.", "input :: LIST<ANY>"),
		fn("toStringList", "LIST<STRING>", "Converts a LIST<ANY> to a LIST<STRING> values.", "input :: LIST<ANY>"),

		// Mathematical functions.
		fn("abs", "INTEGER | FLOAT", "Returns the absolute value of an INTEGER or FLOAT.", "input :: INTEGER | FLOAT"),
		fn("ceil", "FLOAT", "Returns the smallest FLOAT that is greater than or equal to a number and equal to an INTEGER.", "input :: FLOAT"),
		fn("floor", "FLOAT", "Returns the largest FLOAT that is less than or equal to a number and equal to an INTEGER.", "input :: FLOAT"),
		fn("rand", "FLOAT", "Returns a random FLOAT in the range from 0 (inclusive) to 1 (exclusive)."),
		fn("round", "FLOAT", "Returns the value of a number rounded to the specified precision with the specified rounding mode.",
			"value :: FLOAT", "precision :: INTEGER | FLOAT", "mode :: STRING").optional(2),
		fn("sign", "INTEGER", "Returns the signum of an INTEGER or FLOAT: 0 if the number is 0, -1 for any negative number, and 1 for any positive number.",
			"input :: INTEGER | FLOAT"),
		fn("e", "FLOAT", "Returns the base of the natural logarithm, e."),
		fn("exp", "FLOAT", "Returns e^n, where e is the base of the natural logarithm.", "input :: FLOAT"),
		fn("log", "FLOAT", "Returns the natural logarithm of a FLOAT.", "input :: FLOAT"),
		fn("log10", "FLOAT", "Returns the common logarithm (base 10) of a FLOAT.", "input :: FLOAT"),
		fn("sqrt", "FLOAT", "Returns the square root of a FLOAT.", "input :: FLOAT"),
		fn("acos", "FLOAT", "Returns the arccosine of a FLOAT in radians.", "input :: FLOAT"),
		fn("asin", "FLOAT", "Returns the arcsine of a FLOAT in radians.", "input :: FLOAT"),
		fn("atan", "FLOAT", "Returns the arctangent of a FLOAT in radians.", "input :: FLOAT"),
		fn("atan2", "FLOAT", "Returns the arctangent2 of a set of coordinates in radians.", "y :: FLOAT", "x :: FLOAT"),
		fn("cos", "FLOAT", "Returns the cosine of a FLOAT.", "input :: FLOAT"),
		fn("cot", "FLOAT", "Returns the cotangent of a FLOAT.", "input :: FLOAT"),
		fn("degrees", "FLOAT", "Converts radians to degrees.", "input :: FLOAT"),
		fn("haversin", "FLOAT", "Returns half the versine of a number.", "input :: FLOAT"),
		fn("pi", "FLOAT", "Returns the mathematical constant pi."),
		fn("radians", "FLOAT", "Converts degrees to radians.", "input :: FLOAT"),
		fn("sin", "FLOAT", "Returns the sine of a FLOAT.", "input :: FLOAT"),
		fn("tan", "FLOAT", "Returns the tangent of a FLOAT.", "input :: FLOAT"),

		// String functions.
		fn("btrim", "STRING", "Returns the given STRING with leading and trailing trimCharacterString characters removed.",
			"original :: STRING", "trimCharacterString :: STRING").optional(1),
		fn("left", "STRING", "Returns a STRING containing the specified number (INTEGER) of leftmost characters in the given STRING.",
			"original :: STRING", "length :: INTEGER"),
		fn("lower", "STRING", "Returns the given STRING in lowercase.", "input :: STRING"),
		fn("ltrim", "STRING", "Returns the given STRING with leading trimCharacterString characters removed.",
			"input :: STRING", "trimCharacterString :: STRING").optional(1),
		fn("replace", "STRING", "Returns a STRING in which all occurrences of a specified search STRING in the given STRING have been replaced by another STRING.",
			"original :: STRING", "search :: STRING", "replace :: STRING"),
		fn("right", "STRING", "Returns a STRING containing the specified number of rightmost characters in the given STRING.",
			"original :: STRING", "length :: INTEGER"),
		fn("rtrim", "STRING", "Returns the given STRING with trailing trimCharacterString characters removed.",
			"input :: STRING", "trimCharacterString :: STRING").optional(1),
		fn("split", "LIST<STRING>", "Returns a LIST<STRING> resulting from the splitting of the given STRING around matches of the given delimiter(s).",
			"original :: STRING", "splitDelimiters :: STRING | LIST<STRING>"),
		fn("substring", "STRING", "Returns a substring of a given length from the given STRING, beginning with a 0-based index.",
			"original :: STRING", "start :: INTEGER", "length :: INTEGER").optional(1),
		fn("toLower", "STRING", "Returns the given STRING in lowercase.", "input :: STRING"),
		fn("toString", "STRING", "Converts an INTEGER, FLOAT, BOOLEAN, STRING, POINT, DURATION, DATE, ZONED TIME, LOCAL TIME, LOCAL DATETIME or ZONED DATETIME value to a STRING.",
			"input :: ANY"),
		fn("toStringOrNull", "STRING", "Converts a value to a STRING, or null if the value cannot be converted.", "input :: ANY"),
		fn("toUpper", "STRING", "Returns the given STRING in uppercase.", "input :: STRING"),
		fn("upper", "STRING", "Returns the given STRING in uppercase.", "input :: STRING"),

		// Temporal durations.
		fn("duration", "DURATION", "Constructs a DURATION value.", "input :: ANY"),
		fn("duration.between", "DURATION", "Computes the DURATION between the from instant (inclusive) and the to instant (exclusive) in logical units.",
			"from :: ANY", "to :: ANY"),
		fn("duration.inDays", "DURATION", "Computes the DURATION between the from instant (inclusive) and the to instant (exclusive) in days.",
			"from :: ANY", "to :: ANY"),
		fn("duration.inMonths", "DURATION", "Computes the DURATION between the from instant (inclusive) and the to instant (exclusive) in months.",
			"from :: ANY", "to :: ANY"),
		fn("duration.inSeconds", "DURATION", "Computes the DURATION between the from instant (inclusive) and the to instant (exclusive) in seconds.",
			"from :: ANY", "to :: ANY"),
		fn("datetime.fromEpoch", "ZONED DATETIME", "Creates a ZONED DATETIME given the seconds and nanoseconds since the start of the epoch.",
			"seconds :: INTEGER | FLOAT", "nanoseconds :: INTEGER | FLOAT"),
		fn("datetime.fromEpochMillis", "ZONED DATETIME", "Creates a ZONED DATETIME given the milliseconds since the start of the epoch.",
			"milliseconds :: INTEGER | FLOAT"),

		// Spatial functions.
		fn("point", "POINT", "Returns a 2D or 3D point object, given two or respectively three coordinate values in the Cartesian coordinate system or WGS 84 geographic coordinate system.",
			"input :: MAP"),
		fn("point.distance", "FLOAT", "Returns a FLOAT representing the distance between any two points in the same CRS.",
			"from :: POINT", "to :: POINT"),
		fn("point.withinBBox", "BOOLEAN", "Returns true if the provided point is within the bounding box defined by the two provided points.",
			"point :: POINT", "lowerLeft :: POINT", "upperRight :: POINT"),

		// Vector functions.
		fn("vector.similarity.cosine", "FLOAT", "Returns a FLOAT representing the similarity between the argument vectors based on their cosine.",
			"a :: LIST<INTEGER | FLOAT>", "b :: LIST<INTEGER | FLOAT>"),
		fn("vector.similarity.euclidean", "FLOAT", "Returns a FLOAT representing the similarity between the argument vectors based on their Euclidean distance.",
			"a :: LIST<INTEGER | FLOAT>", "b :: LIST<INTEGER | FLOAT>"),

		// Graph functions.
		fn("graph.byElementId", "GRAPH", "Resolves the constituent graph to which a given element id belongs.", "elementId :: STRING"),
		fn("graph.byName", "GRAPH", "Resolves a constituent graph by name.", "name :: STRING"),
		fn("graph.names", "LIST<STRING>", "Returns a LIST<STRING> containing the names of all graphs in the current composite database."),
		fn("graph.propertiesByName", "MAP", "Returns a MAP containing the properties associated with the given graph.", "name :: STRING"),

		// LOAD CSV functions.
		fn("file", "STRING", "Returns the absolute path of the file that LOAD CSV is using."),
		fn("linenumber", "INTEGER", "Returns the line number that LOAD CSV is currently using."),
	},
	temporal("date", "DATE"),
	temporal("datetime", "ZONED DATETIME"),
	temporal("localdatetime", "LOCAL DATETIME"),
	temporal("localtime", "LOCAL TIME"),
	temporal("time", "ZONED TIME"),
)

// byName indexes builtins by lowercased qualified name.
var byName = func() map[string]*Function {
	m := make(map[string]*Function, len(builtins))
	for _, f := range builtins {
		m[strings.ToLower(f.Name)] = f
	}

	return m
}()

// namespaces holds every lowercased namespace that prefixes a builtin.
var namespaces = func() map[string]bool {
	m := make(map[string]bool)

	for _, f := range builtins {
		name := strings.ToLower(f.Name)
		for i := strings.LastIndexByte(name, '.'); i > 0; i = strings.LastIndexByte(name, '.') {
			name = name[:i]
			m[name] = true
		}
	}

	return m
}()

// LookupFunction finds a builtin by qualified name, ignoring case.
func LookupFunction(name string) *Function {
	return byName[strings.ToLower(name)]
}

// Functions returns every builtin sorted by name.
func Functions() []*Function {
	out := slices.Clone(builtins)
	slices.SortFunc(out, func(a, b *Function) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return out
}

// IsBuiltinNamespace reports whether ns is reserved for builtins, such as
// "date" or "vector.similarity". Functions in other namespaces are assumed
// to be user-defined.
func IsBuiltinNamespace(ns []string) bool {
	return namespaces[strings.ToLower(strings.Join(ns, "."))]
}
