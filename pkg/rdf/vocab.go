package rdf

// Well-known namespaces.
const (
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	OWLNamespace = "http://www.w3.org/2002/07/owl#"
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)

// RDF terms.
const (
	RDFTypeIRI    = RDFNamespace + "type"
	RDFLangString = RDFNamespace + "langString"
)

// RDFType is the rdf:type predicate.
var RDFType = IRI(RDFTypeIRI)

// XSD datatypes recognised by the literal comparators and serializers.
const (
	XSDString             = XSDNamespace + "string"
	XSDNormalizedString   = XSDNamespace + "normalizedString"
	XSDToken              = XSDNamespace + "token"
	XSDBoolean            = XSDNamespace + "boolean"
	XSDDecimal            = XSDNamespace + "decimal"
	XSDFloat              = XSDNamespace + "float"
	XSDDouble             = XSDNamespace + "double"
	XSDInteger            = XSDNamespace + "integer"
	XSDLong               = XSDNamespace + "long"
	XSDInt                = XSDNamespace + "int"
	XSDShort              = XSDNamespace + "short"
	XSDByte               = XSDNamespace + "byte"
	XSDNonNegativeInteger = XSDNamespace + "nonNegativeInteger"
	XSDNonPositiveInteger = XSDNamespace + "nonPositiveInteger"
	XSDPositiveInteger    = XSDNamespace + "positiveInteger"
	XSDNegativeInteger    = XSDNamespace + "negativeInteger"
	XSDUnsignedLong       = XSDNamespace + "unsignedLong"
	XSDUnsignedInt        = XSDNamespace + "unsignedInt"
	XSDUnsignedShort      = XSDNamespace + "unsignedShort"
	XSDUnsignedByte       = XSDNamespace + "unsignedByte"
	XSDDate               = XSDNamespace + "date"
	XSDDateTime           = XSDNamespace + "dateTime"
	XSDTime               = XSDNamespace + "time"
)

var numericTypes = map[string]bool{
	XSDDecimal: true, XSDFloat: true, XSDDouble: true,
	XSDInteger: true, XSDLong: true, XSDInt: true, XSDShort: true, XSDByte: true,
	XSDNonNegativeInteger: true, XSDNonPositiveInteger: true,
	XSDPositiveInteger: true, XSDNegativeInteger: true,
	XSDUnsignedLong: true, XSDUnsignedInt: true, XSDUnsignedShort: true, XSDUnsignedByte: true,
}

var stringTypes = map[string]bool{
	XSDString: true, RDFLangString: true, XSDNormalizedString: true, XSDToken: true,
}

// IsNumericType reports whether datatype is one of the XSD numeric types.
func IsNumericType(datatype string) bool { return numericTypes[datatype] }

// IsStringType reports whether datatype holds plain text: xsd:string, its
// derived string types or rdf:langString. An empty datatype counts as
// xsd:string.
func IsStringType(datatype string) bool { return datatype == "" || stringTypes[datatype] }
