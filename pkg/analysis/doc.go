// Package analysis holds the PESTEL request and result types shared by the
// form controller, the backend client and the renderers.
//
// FormInput mirrors the JSON body accepted by POST /analyze_pestel; field
// names on the wire are snake_case. Political factors are a closed set of five
// labels, see PoliticalFactors.
package analysis
