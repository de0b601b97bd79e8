package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/grafbee/procurement-service/internal/models"
)

func TestRegisterVendor_ValidationFailures(t *testing.T) {
	valid := models.VendorRequest{
		Username:            "alpha",
		YearOfEstablishment: 2005,
		OwnershipType:       "Private",
	}

	tests := map[string]func(vendorReq *models.VendorRequest){
		"missing username":       func(r *models.VendorRequest) { r.Username = "" },
		"missing ownership":      func(r *models.VendorRequest) { r.OwnershipType = "" },
		"unknown ownership":      func(r *models.VendorRequest) { r.OwnershipType = "Franchise" },
		"year before 1800":       func(r *models.VendorRequest) { r.YearOfEstablishment = 1750 },
		"year in the future":     func(r *models.VendorRequest) { r.YearOfEstablishment = 2120 },
		"zero year of establish": func(r *models.VendorRequest) { r.YearOfEstablishment = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			vendorReq := valid
			mutate(&vendorReq)

			service := NewVendorService(nil, nil, nil, nil)
			_, err := service.RegisterVendor(context.Background(), vendorReq)
			requireStatusCode(t, err, http.StatusBadRequest)
		})
	}
}

func TestSubmitDocument_RejectsUnknownType(t *testing.T) {
	service := NewVendorService(nil, nil, nil, nil)

	for _, docType := range []string{"", "Driving License", "gst registration certificate"} {
		_, err := service.SubmitDocument(context.Background(), "alpha", docType)
		requireStatusCode(t, err, http.StatusBadRequest)
	}
}
