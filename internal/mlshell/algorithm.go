package mlshell

import "fmt"

// Algorithm is one supported adapter of the ML shell: a model class in a
// package, known to the shell under Adapter.
type Algorithm struct {
	Package string `json:"package"`
	Class   string `json:"class"`
	Adapter string `json:"adapter"`
}

func (a Algorithm) String() string {
	return a.Package + "." + a.Class
}

var algorithms = []Algorithm{
	{Package: "sklearn.ensemble", Class: "RandomForestRegressor", Adapter: "random_forest"},
	{Package: "sklearn.ensemble", Class: "GradientBoostingRegressor", Adapter: "gradient_boosting"},
	{Package: "sklearn.linear_model", Class: "LinearRegression", Adapter: "linear"},
	{Package: "sklearn.linear_model", Class: "Ridge", Adapter: "ridge"},
	{Package: "sklearn.neighbors", Class: "KNeighborsRegressor", Adapter: "knn"},
	{Package: "sklearn.tree", Class: "DecisionTreeRegressor", Adapter: "decision_tree"},
}

// DefaultAlgorithm is assigned to every new account.
var DefaultAlgorithm = algorithms[0]

// Algorithms returns the supported adapters.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(algorithms))
	copy(out, algorithms)
	return out
}

// LookupAlgorithm resolves a package/class pair to its adapter.
func LookupAlgorithm(pkg, class string) (Algorithm, error) {
	for _, a := range algorithms {
		if a.Package == pkg && a.Class == class {
			return a, nil
		}
	}
	return Algorithm{}, fmt.Errorf("%w: %s.%s", ErrUnsupportedAlgorithm, pkg, class)
}

// LookupClass resolves a class name alone. Class names are unique across
// the supported packages.
func LookupClass(class string) (Algorithm, error) {
	for _, a := range algorithms {
		if a.Class == class {
			return a, nil
		}
	}
	return Algorithm{}, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, class)
}
