package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/crowdhq/crowd-client-go/internal/dtos"
	"github.com/crowdhq/crowd-client-go/internal/location"
	"github.com/crowdhq/crowd-client-go/internal/models"
	"github.com/crowdhq/crowd-client-go/internal/utils"
)

func propertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Browse and manage property listings",
	}
	cmd.AddCommand(
		propertiesListCmd(),
		propertiesNearbyCmd(),
		propertiesGetCmd(),
		propertiesCreateCmd(),
		propertiesUpdateCmd(),
		propertiesDeleteCmd(),
		propertiesSavedCmd(),
		propertiesSaveCmd(),
		propertiesUnsaveCmd(),
		propertiesUploadCmd(),
		propertiesDeleteImageCmd(),
	)
	return cmd
}

// propertyInputFlags registers the listing fields on cmd and returns a
// builder that folds the flags that were actually set into a sparse
// PropertyInput.
func propertyInputFlags(cmd *cobra.Command) func() dtos.PropertyInput {
	var (
		title, description, propertyType, status, frequency string
		bedrooms, bathrooms                                 int
		size, amount                                        float64
	)
	cmd.Flags().StringVar(&title, "title", "", "listing title")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&propertyType, "type", "", "property type")
	cmd.Flags().IntVar(&bedrooms, "bedrooms", 0, "bedroom count")
	cmd.Flags().IntVar(&bathrooms, "bathrooms", 0, "bathroom count")
	cmd.Flags().Float64Var(&size, "size", 0, "size in square meters")
	cmd.Flags().Float64Var(&amount, "price", 0, "price amount (NGN)")
	cmd.Flags().StringVar(&frequency, "frequency", "", "payment frequency: monthly|quarterly|biannually|yearly")
	cmd.Flags().StringVar(&status, "status", "", "listing status")

	return func() dtos.PropertyInput {
		input := dtos.PropertyInput{
			Title:        title,
			Description:  description,
			PropertyType: models.PropertyType(propertyType),
			Status:       models.PropertyStatus(status),
		}
		if cmd.Flags().Changed("bedrooms") {
			input.Bedrooms = utils.Ptr(bedrooms)
		}
		if cmd.Flags().Changed("bathrooms") {
			input.Bathrooms = utils.Ptr(bathrooms)
		}
		if cmd.Flags().Changed("size") {
			input.Size = utils.Ptr(size)
		}
		if cmd.Flags().Changed("price") {
			input.Price = &models.Price{
				Amount:           amount,
				Currency:         "NGN",
				PaymentFrequency: models.PaymentFrequency(frequency),
			}
		}
		return input
	}
}

func propertiesCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a listing (landlord)",
	}
	buildInput := propertyInputFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		prop, err := a.properties.Create(cmd.Context(), buildInput())
		if err != nil {
			return err
		}
		return printJSON(prop)
	}
	return cmd
}

func propertiesUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <property-id>",
		Short: "Update a listing (landlord)",
		Args:  cobra.ExactArgs(1),
	}
	buildInput := propertyInputFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		prop, err := a.properties.Update(cmd.Context(), args[0], buildInput())
		if err != nil {
			return err
		}
		return printJSON(prop)
	}
	return cmd
}

func propertiesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <property-id>",
		Short: "Delete a listing (landlord)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.properties.Delete(cmd.Context(), args[0])
		},
	}
}

func propertiesDeleteImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-image <property-id> <image-id>",
		Short: "Remove one listing image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.properties.DeleteImage(cmd.Context(), args[0], args[1])
		},
	}
}

func propertiesListCmd() *cobra.Command {
	var (
		priceMin, priceMax float64
		bedrooms           int
		propertyType       string
		features           []string
		loc                string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties matching the given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.properties.SetFilters(func(f *models.PropertyFilters) {
				if cmd.Flags().Changed("min-price") {
					f.PriceMin = utils.Ptr(priceMin)
				}
				if cmd.Flags().Changed("max-price") {
					f.PriceMax = utils.Ptr(priceMax)
				}
				if cmd.Flags().Changed("bedrooms") {
					f.Bedrooms = utils.Ptr(bedrooms)
				}
				if propertyType != "" {
					f.PropertyType = utils.Ptr(models.PropertyType(propertyType))
				}
				for _, feat := range features {
					f.Features = append(f.Features, models.PropertyFeature(strings.TrimSpace(feat)))
				}
				if loc != "" {
					// State names get their canonical spelling; anything
					// else passes through as free text.
					if state, ok := models.NormalizeState(loc); ok {
						loc = state
					}
					f.Location = utils.Ptr(loc)
				}
			})

			list, err := a.properties.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	}

	cmd.Flags().Float64Var(&priceMin, "min-price", 0, "minimum price")
	cmd.Flags().Float64Var(&priceMax, "max-price", 0, "maximum price")
	cmd.Flags().IntVar(&bedrooms, "bedrooms", 0, "bedroom count")
	cmd.Flags().StringVar(&propertyType, "type", "", "property type")
	cmd.Flags().StringSliceVar(&features, "features", nil, "required features")
	cmd.Flags().StringVar(&loc, "location", "", "state or free-text location")
	_ = cmd.RegisterFlagCompletionFunc("location",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return models.NigerianStates, cobra.ShellCompDirectiveNoFileComp
		})
	return cmd
}

func propertiesNearbyCmd() *cobra.Command {
	var lat, lng float64

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List properties near a position (flags, or CROWD_LAT/CROWD_LNG)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			var coords *location.Coordinates
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				coords = &location.Coordinates{Latitude: lat, Longitude: lng}
			}
			list, err := a.properties.FetchNearby(cmd.Context(), coords)
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	return cmd
}

func propertiesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <property-id>",
		Short: "Fetch one property's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			prop, err := a.properties.FetchByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(prop)
		},
	}
}

func propertiesSavedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List saved properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			list, err := a.properties.FetchSaved(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	}
}

func propertiesSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <property-id>",
		Short: "Save a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			_, err = a.properties.Save(cmd.Context(), args[0])
			return err
		},
	}
}

func propertiesUnsaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unsave <property-id>",
		Short: "Remove a saved property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.properties.Unsave(cmd.Context(), args[0])
		},
	}
}

func propertiesUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <property-id> <image>...",
		Short: "Upload listing images (replaces the image list server-side order)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			files := make([]dtos.ImageFile, 0, len(args)-1)
			for _, p := range args[1:] {
				files = append(files, dtos.ImageFile{Path: p})
			}
			images, err := a.properties.UploadImages(cmd.Context(), args[0], files)
			if err != nil {
				return err
			}
			return printJSON(images)
		},
	}
}
