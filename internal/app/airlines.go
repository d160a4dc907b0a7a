package app

// airlineNames covers the carriers the storefront sees most. Codes missing
// here either resolve through the response dictionary or fall back to the
// raw code.
var airlineNames = map[string]string{
	"AI": "Air India",
	"6E": "IndiGo",
	"SG": "SpiceJet",
	"UK": "Vistara",
	"G8": "Go First",
	"I5": "AIX Connect",
	"QP": "Akasa Air",
	"9W": "Jet Airways",

	"TK": "Turkish Airlines",
	"LH": "Lufthansa",
	"AF": "Air France",
	"BA": "British Airways",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"EY": "Etihad Airways",
	"SV": "Saudia",
	"MS": "EgyptAir",
	"RJ": "Royal Jordanian",
	"ET": "Ethiopian Airlines",
	"KQ": "Kenya Airways",
	"SA": "South African Airways",
	"PC": "Pegasus Airlines",
	"FR": "Ryanair",
	"U2": "EasyJet",
	"W6": "Wizz Air",
	"FZ": "FlyDubai",
	"KL": "KLM Royal Dutch Airlines",
	"IB": "Iberia",
	"AZ": "ITA Airways",
	"OS": "Austrian Airlines",
	"LX": "Swiss International Air Lines",
	"VS": "Virgin Atlantic",

	"UA": "United Airlines",
	"AA": "American Airlines",
	"DL": "Delta Air Lines",
	"AC": "Air Canada",

	"SQ": "Singapore Airlines",
	"CX": "Cathay Pacific",
	"NH": "All Nippon Airways",
	"JL": "Japan Airlines",
	"TG": "Thai Airways",
	"MH": "Malaysia Airlines",
	"GA": "Garuda Indonesia",
	"VN": "Vietnam Airlines",
	"QF": "Qantas",
	"SU": "Aeroflot",
}
