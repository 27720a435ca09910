package technique

// seedEntries defines the technique table. Answer keys are stored in
// normalized form; New rejects keys that are not.
var seedEntries = []Entry{
	{
		ID:          Power,
		Name:        "Power Rule",
		Difficulty:  Easy,
		Description: "A sum of powers of x. Integrate term by term: x^n becomes x^(n+1)/(n+1).",
		Hints: []string{
			"Split the integral into one integral per term.",
			"For each term x^n, add one to the exponent.",
			"Divide each term by its new exponent.",
			"Constants integrate to the constant times x. Remember + C at the end.",
		},
		Steps: []string{
			"Start with the integral of {input} dx.",
			"Integrate each term separately using the power rule x^n -> x^(n+1)/(n+1).",
			"Combine the terms: {answer}.",
			"Add the constant of integration: {answer} + C.",
		},
		Answers: map[string]string{
			"1":       "x",
			"x":       "x^2/2",
			"x^2":     "x^3/3",
			"x^3":     "x^4/4",
			"x^4":     "x^5/5",
			"2x":      "x^2",
			"3x^2":    "x^3",
			"4x^3":    "x^4",
			"x^2+1":   "x^3/3 + x",
			"x+1":     "x^2/2 + x",
			"3x^2+2x": "x^3 + x^2",
		},
	},
	{
		ID:          Substitution,
		Name:        "U-Substitution",
		Difficulty:  Medium,
		Description: "Look for an inner function whose derivative also appears, and substitute u for it.",
		Hints: []string{
			"Find an inner expression u whose derivative is (up to a constant) also in the integrand.",
			"Write du in terms of dx.",
			"Rewrite the whole integral in terms of u and integrate.",
			"Substitute back for u and add + C.",
		},
		Steps: []string{
			"Start with the integral of {input} dx.",
			"Choose u as the inner expression and compute du.",
			"Rewrite the integral in u, integrate, and substitute back.",
			"Result: {answer} + C.",
		},
		Answers: map[string]string{
			"e^x":    "e^x",
			"e^(2x)": "e^(2x)/2",
			"e^(3x)": "e^(3x)/3",
			"e^(-x)": "-e^(-x)",
			"ln(x)":  "x*ln(x) - x",
		},
	},
	{
		ID:          Trig,
		Name:        "Trigonometric Integration",
		Difficulty:  Medium,
		Description: "The integrand contains trigonometric functions. Use the basic antiderivatives and identities.",
		Hints: []string{
			"Recall: the integral of sin(x) is -cos(x) and the integral of cos(x) is sin(x).",
			"For sin(ax) or cos(ax), divide by a after integrating.",
			"Products like sin(x)cos(x) often simplify with u = sin(x).",
			"Check the sign of your result; it is the most common slip here.",
		},
		Steps: []string{
			"Start with the integral of {input} dx.",
			"Match the integrand to a known trigonometric antiderivative or identity.",
			"Integrate: {answer}.",
			"Add the constant of integration: {answer} + C.",
		},
		Answers: map[string]string{
			"sin(x)":        "-cos(x)",
			"cos(x)":        "sin(x)",
			"sin(2x)":       "-cos(2x)/2",
			"cos(2x)":       "sin(2x)/2",
			"tan(x)":        "-ln|cos(x)|",
			"sin(x)cos(x)":  "sin(x)^2/2",
			"sin(x)*cos(x)": "sin(x)^2/2",
		},
	},
	{
		ID:          Parts,
		Name:        "Integration by Parts",
		Difficulty:  Hard,
		Description: "A product of two different kinds of functions. Use the integral of u dv = uv - integral of v du.",
		Hints: []string{
			"Pick u using LIATE: logarithmic, inverse trig, algebraic, trigonometric, exponential.",
			"Compute du and v from your choices of u and dv.",
			"Apply uv - integral of v du.",
			"The remaining integral should be simpler. Repeat parts if needed, then add + C.",
		},
		Steps: []string{
			"Start with the integral of {input} dx.",
			"Choose u and dv, then compute du and v.",
			"Apply uv - integral of v du and integrate the remainder.",
			"Result: {answer} + C.",
		},
		Answers: map[string]string{
			"x*e^x":   "x*e^x - e^x",
			"x*ln(x)": "x^2*ln(x)/2 - x^2/4",
			"x^2*e^x": "x^2*e^x - 2x*e^x + 2e^x",
			"ln(x)*x": "x^2*ln(x)/2 - x^2/4",
		},
	},
	{
		ID:          Partial,
		Name:        "Partial Fractions",
		Difficulty:  Hard,
		Description: "A rational function. Split it into simpler fractions and integrate each one.",
		Hints: []string{
			"Factor the denominator completely.",
			"Write one fraction A/(factor) for each linear factor.",
			"Solve for the constants by clearing denominators.",
			"Each A/(x-a) integrates to A*ln|x-a|. Add + C.",
		},
		Steps: []string{
			"Start with the integral of {input} dx.",
			"Factor the denominator and set up the partial fraction decomposition.",
			"Solve for the coefficients and integrate each fraction.",
			"Result: {answer} + C.",
		},
		Answers: map[string]string{
			"1/x":        "ln|x|",
			"1/(x+1)":    "ln|x+1|",
			"1/(x^2-1)":  "ln|x-1|/2 - ln|x+1|/2",
			"1/(x(x+1))": "ln|x| - ln|x+1|",
		},
	},
}
