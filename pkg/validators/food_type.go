package validators

import "errors"

var ErrFoodTypeInvalid = errors.New("invalid food type provided")

// "hippo" is a leftover inside joke from the first seed data. Kept so
// existing rows stay valid.
var allowedFoodTypes = map[string]struct{}{
	"aliment": {},
	"plat":    {},
	"dessert": {},
	"boisson": {},
	"hippo":   {},
}

func FoodTypeValidator(t string) error {
	if _, ok := allowedFoodTypes[t]; !ok {
		return ErrFoodTypeInvalid
	}

	return nil
}

// KnownFoodType reports whether t names one of the catalog categories,
// for callers that want to ignore unknown filters instead of failing.
func KnownFoodType(t string) bool {
	_, ok := allowedFoodTypes[t]
	return ok
}
