// Package apimodel holds the canonical API model that every language emitter
// reads.
//
// An APISchema is built once by the parser and never modified afterwards. It
// carries the record and enum schemas sorted by name, the endpoints in
// document order, the distinct categories of non-deprecated endpoints and the
// version triplet that is propagated into every package manifest.
//
// # Building
//
//	version, err := apimodel.ParseVersion("24.3.8471")
//	if err != nil {
//	    return err
//	}
//	api := apimodel.New(version, schemas, endpoints)
//	for _, category := range api.Categories {
//	    for _, ep := range api.EndpointsIn(category) {
//	        fmt.Println(category, ep.Method, ep.Path)
//	    }
//	}
package apimodel
