package expr

import (
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

// jsNames maps normalized function names onto the JavaScript Math object.
var jsNames = strings.NewReplacer(
	"sin(", "Math.sin(",
	"cos(", "Math.cos(",
	"tan(", "Math.tan(",
	"sqrt(", "Math.sqrt(",
	"log(", "Math.log10(",
	"ln(", "Math.log(",
	"pi", "Math.PI",
)

// Flat radian-mode tapes evaluate the same under a JavaScript engine, which
// is how calculators of this kind have traditionally been run.
func TestEvaluateMatchesJavaScript(t *testing.T) {
	tapes := []string{
		"1+2×3",
		"(1.5+2.25)÷0.5",
		"2^10",
		"sqrt(2)+ln(10)",
		"log(250)×3",
		"sin(1)+cos(2)×tan(0.5)",
		"π×2^0.5",
		"7÷3−1",
		"((2+3)×(4−1))^2",
		"3!×4!",
		"1÷3+1÷3+1÷3",
		"0.1+0.2",
	}

	vm := goja.New()
	for _, tape := range tapes {
		t.Run(tape, func(t *testing.T) {
			expanded, err := ExpandFactorials(Normalize(tape))
			require.NoError(t, err)

			v, err := vm.RunString(jsNames.Replace(expanded))
			require.NoError(t, err)
			want := v.ToFloat()

			got, err := Evaluate(tape, Radians)
			require.NoError(t, err)
			assert.True(t, scalar.EqualWithinAbsOrRel(got, want, 1e-12, 1e-12),
				"%q: go=%v js=%v", tape, got, want)
		})
	}
}
