package component

// builtins returns the descriptors for the built-in component library.
func builtins() []Descriptor {
	return []Descriptor{
		{
			Name: "SimpleImputer",
			Kind: KindTransformer,
			Defaults: Parameters{
				"impute_strategy": "mean",
				"fill_value":      0.0,
			},
			New: NewSimpleImputer,
		},
		{
			Name:     "StandardScaler",
			Kind:     KindTransformer,
			Defaults: Parameters{},
			New:      NewStandardScaler,
		},
		{
			Name: "OneHotEncoder",
			Kind: KindTransformer,
			Defaults: Parameters{
				"top_n": 10,
			},
			New: NewOneHotEncoder,
		},
		{
			Name:     "SelectColumns",
			Kind:     KindTransformer,
			Defaults: Parameters{},
			New:      NewSelectColumns,
		},
		{
			Name:           "Undersampler",
			Kind:           KindTransformer,
			ProducesTarget: true,
			Defaults: Parameters{
				"sampling_ratio": 1.0,
			},
			New: NewUndersampler,
		},
		{
			Name:     "BaselineClassifier",
			Kind:     KindEstimator,
			Defaults: Parameters{},
			New:      NewBaselineClassifier,
		},
		{
			Name:     "BaselineRegressor",
			Kind:     KindEstimator,
			Defaults: Parameters{},
			New:      NewBaselineRegressor,
		},
		{
			Name: "LinearRegressor",
			Kind: KindEstimator,
			Defaults: Parameters{
				"fit_intercept": true,
			},
			New: NewLinearRegressor,
		},
	}
}
