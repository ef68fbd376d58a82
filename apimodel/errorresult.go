package apimodel

// ErrorResultName is the name of the synthetic model returned for failed
// requests.
const ErrorResultName = "ErrorResult"

// ErrorResult returns the synthetic model every client uses to describe a
// failed request.
func ErrorResult() SchemaItem {
	return SchemaItem{
		Name:                ErrorResultName,
		DescriptionMarkdown: "Represents a failed API request.",
		Fields: []SchemaField{
			{Name: "type", DataType: "string", DescriptionMarkdown: "A description of the type of error that occurred."},
			{Name: "title", DataType: "string", DescriptionMarkdown: "A short title describing the error."},
			{Name: "status", DataType: "int32", DescriptionMarkdown: "If an error code is applicable, this contains an error number."},
			{Name: "detail", DataType: "string", DescriptionMarkdown: "If detailed information about this error is available, this value contains more information."},
			{Name: "instance", DataType: "string", DescriptionMarkdown: "If this error corresponds to a specific instance or object, this field indicates which one."},
			{Name: "content", DataType: "string", DescriptionMarkdown: "The full content of the HTTP response."},
		},
	}
}
