package handlers

import "strings"

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateCartItem(req CartItemRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(req.ProductID) == "" {
		errs = append(errs, ValidationError{Field: "ProductID", Description: "Product id is required"})
	}
	if req.Absolute && req.Quantity < 0 {
		errs = append(errs, ValidationError{Field: "Quantity", Description: "Absolute quantity cannot be negative"})
	}
	if !req.Absolute && req.Quantity == 0 {
		errs = append(errs, ValidationError{Field: "Quantity", Description: "Quantity delta cannot be zero"})
	}
	return errs
}
