package normalize

import (
	"strings"

	"github.com/yacobolo/csstw/internal/cssmodel"
)

// ScaleCategory names the design scale a property's lengths snap to.
type ScaleCategory string

// Scale categories
const (
	CategoryNone          ScaleCategory = ""
	CategoryFontSize      ScaleCategory = "fontSize"
	CategoryLineHeight    ScaleCategory = "lineHeight"
	CategoryLetterSpacing ScaleCategory = "letterSpacing"
	CategoryBorderRadius  ScaleCategory = "borderRadius"
	CategoryBorderWidth   ScaleCategory = "borderWidth"
	CategoryWidth         ScaleCategory = "width"
	CategoryHeight        ScaleCategory = "height"
	CategoryMargin        ScaleCategory = "margin"
	CategoryPadding       ScaleCategory = "padding"
	CategoryGap           ScaleCategory = "gap"
)

// propertyCategories maps longhand property names to scale categories
var propertyCategories = map[string]ScaleCategory{
	// Typography
	"font-size":      CategoryFontSize,
	"line-height":    CategoryLineHeight,
	"letter-spacing": CategoryLetterSpacing,

	// Borders
	"border-radius":              CategoryBorderRadius,
	"border-top-left-radius":     CategoryBorderRadius,
	"border-top-right-radius":    CategoryBorderRadius,
	"border-bottom-right-radius": CategoryBorderRadius,
	"border-bottom-left-radius":  CategoryBorderRadius,
	"border-width":               CategoryBorderWidth,
	"border-top-width":           CategoryBorderWidth,
	"border-right-width":         CategoryBorderWidth,
	"border-bottom-width":        CategoryBorderWidth,
	"border-left-width":          CategoryBorderWidth,

	// Sizing
	"width":  CategoryWidth,
	"height": CategoryHeight,

	// Spacing
	"margin":         CategoryMargin,
	"margin-top":     CategoryMargin,
	"margin-right":   CategoryMargin,
	"margin-bottom":  CategoryMargin,
	"margin-left":    CategoryMargin,
	"padding":        CategoryPadding,
	"padding-top":    CategoryPadding,
	"padding-right":  CategoryPadding,
	"padding-bottom": CategoryPadding,
	"padding-left":   CategoryPadding,
	"gap":            CategoryGap,
	"row-gap":        CategoryGap,
	"column-gap":     CategoryGap,
}

// Categorize returns the scale category of a property.
func Categorize(property string) ScaleCategory {
	return propertyCategories[property]
}

// IsColorProperty reports whether a property carries a color value.
func IsColorProperty(property string) bool {
	return !cssmodel.IsCustomProperty(property) && strings.Contains(property, "color")
}
