package rewrite

import "fmt"

// visualizationStatement builds the fragColor-assigning statement for
// a value of vtype named symbol. Scalars and bool/int casts fan out
// into all three color channels; vec2 borrows the red/green channels
// and forces alpha to 1; vec3 is used as-is with alpha forced to 1;
// vec4 is assigned directly.
func visualizationStatement(vtype, symbol string) string {
	switch vtype {
	case "vec2":
		return fmt.Sprintf("fragColor = vec4(%s, 0.0, 1.0);", symbol)
	case "vec3":
		return fmt.Sprintf("fragColor = vec4(%s, 1.0);", symbol)
	case "vec4":
		return fmt.Sprintf("fragColor = %s;", symbol)
	default:
		return fmt.Sprintf("fragColor = vec4(vec3(%s), 1.0);", symbol)
	}
}
