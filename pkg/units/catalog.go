package units

// Category identifiers.
const (
	Length      = "length"
	Mass        = "mass"
	Temperature = "temperature"
	Area        = "area"
	Volume      = "volume"
)

// Temperature scales.
const (
	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"
	Kelvin     = "kelvin"
)

// Meters is the base unit of the length category. Dimensions are reduced
// through it.
const Meters = "meters"

func catalog() []*Category {
	return []*Category{
		NewCategory(Length, "Length",
			linear(Meters, "Meters (m)", 1),
			linear("kilometers", "Kilometers (km)", 1000),
			linear("centimeters", "Centimeters (cm)", 0.01),
			linear("millimeters", "Millimeters (mm)", 0.001),
			linear("miles", "Miles (mi)", 1609.344),
			linear("yards", "Yards (yd)", 0.9144),
			linear("feet", "Feet (ft)", 0.3048),
			linear("inches", "Inches (in)", 0.0254),
		),
		NewCategory(Mass, "Mass",
			linear("kilograms", "Kilograms (kg)", 1),
			linear("grams", "Grams (g)", 0.001),
			linear("milligrams", "Milligrams (mg)", 0.000001),
			linear("pounds", "Pounds (lb)", 0.45359237),
			linear("ounces", "Ounces (oz)", 0.028349523125),
		),
		NewCategory(Temperature, "Temperature",
			temperature(Celsius, "Celsius (°C)"),
			temperature(Fahrenheit, "Fahrenheit (°F)"),
			temperature(Kelvin, "Kelvin (K)"),
		),
		NewCategory(Area, "Area",
			// Metric
			dimensional("squareMeters", "Square Meters (m²)", 1, KindArea),
			dimensional("squareKilometers", "Square Kilometers (km²)", 1e6, KindArea),
			dimensional("squareCentimeters", "Square Centimeters (cm²)", 1e-4, KindArea),
			// Imperial/US
			dimensional("squareFeet", "Square Feet (ft²)", 0.092903, KindArea),
			dimensional("squareInches", "Square Inches (in²)", 0.00064516, KindArea),
			dimensional("squareYards", "Square Yards (yd²)", 0.836127, KindArea),
			linear("acres", "Acres", 4046.86),
			linear("hectares", "Hectares (ha)", 10000),
		),
		NewCategory(Volume, "Volume",
			// Metric
			linear("liters", "Liters (L)", 1),
			linear("milliliters", "Milliliters (mL)", 0.001),
			dimensional("cubicMeters", "Cubic Meters (m³)", 1000, KindVolume),
			// US Customary
			linear("gallons", "Gallons (gal)", 3.78541),
			linear("quarts", "Quarts (qt)", 0.946353),
			linear("pints", "Pints (pt)", 0.473176),
			linear("cups", "Cups (cup)", 0.236588),
			linear("fluidOunces", "Fluid Ounces (fl oz)", 0.0295735),
			// Cubic
			dimensional("cubicFeet", "Cubic Feet (ft³)", 28.3168, KindVolume),
			dimensional("cubicInches", "Cubic Inches (in³)", 0.0163871, KindVolume),
			dimensional("cubicYards", "Cubic Yards (yd³)", 764.555, KindVolume),
		),
	}
}
