package model

// Choice is a stable code paired with its display label
type Choice struct {
	Code  string
	Label string
}

// InstitutionChoice extends Choice with the campus location
type InstitutionChoice struct {
	Choice
	City     string
	Province string
}

// Gender restrictions for an accommodation
const (
	GenderAny    = "any"
	GenderMale   = "male"
	GenderFemale = "female"
)

// GenderChoices lists the accepted gender restriction values
var GenderChoices = []Choice{
	{GenderAny, "Any Gender"},
	{GenderFemale, "Female Only"},
	{GenderMale, "Male Only"},
}

// Bursary statuses
const (
	BursaryStatusOpen     = "open"
	BursaryStatusClosed   = "closed"
	BursaryStatusUpcoming = "upcoming"
)

// BursaryStatusChoices lists the accepted bursary status values
var BursaryStatusChoices = []Choice{
	{BursaryStatusOpen, "Open"},
	{BursaryStatusClosed, "Closed"},
	{BursaryStatusUpcoming, "Upcoming"},
}

var InstitutionChoices = []InstitutionChoice{
	// Public universities
	{Choice{"uct", "University of Cape Town"}, "Cape Town", "Western Cape"},
	{Choice{"wits", "University of the Witwatersrand"}, "Johannesburg", "Gauteng"},
	{Choice{"up", "University of Pretoria"}, "Pretoria", "Gauteng"},
	{Choice{"su", "Stellenbosch University"}, "Stellenbosch", "Western Cape"},
	{Choice{"ukzn", "University of KwaZulu-Natal"}, "Durban", "KwaZulu-Natal"},
	{Choice{"uj", "University of Johannesburg"}, "Johannesburg", "Gauteng"},
	{Choice{"rhodes", "Rhodes University"}, "Makhanda", "Eastern Cape"},
	{Choice{"ufs", "University of the Free State"}, "Bloemfontein", "Free State"},
	{Choice{"ul", "University of Limpopo"}, "Polokwane", "Limpopo"},
	{Choice{"nwu", "North-West University"}, "Potchefstroom", "North West"},
	{Choice{"univen", "University of Venda"}, "Thohoyandou", "Limpopo"},
	{Choice{"wsu", "Walter Sisulu University"}, "Mthatha", "Eastern Cape"},
	{Choice{"unisa", "University of South Africa"}, "Pretoria", "Gauteng"},
	{Choice{"nmu", "Nelson Mandela University"}, "Gqeberha", "Eastern Cape"},
	{Choice{"unizulu", "University of Zululand"}, "KwaDlangezwa", "KwaZulu-Natal"},
	{Choice{"ufh", "University of Fort Hare"}, "Alice", "Eastern Cape"},
	{Choice{"ump", "University of Mpumalanga"}, "Mbombela", "Mpumalanga"},
	{Choice{"spu", "Sol Plaatje University"}, "Kimberley", "Northern Cape"},
	// Universities of technology
	{Choice{"tut", "Tshwane University of Technology"}, "Pretoria", "Gauteng"},
	{Choice{"cput", "Cape Peninsula University of Technology"}, "Cape Town", "Western Cape"},
	{Choice{"dut", "Durban University of Technology"}, "Durban", "KwaZulu-Natal"},
	{Choice{"cut", "Central University of Technology"}, "Bloemfontein", "Free State"},
	{Choice{"vut", "Vaal University of Technology"}, "Vanderbijlpark", "Gauteng"},
	{Choice{"mut", "Mangosuthu University of Technology"}, "Durban", "KwaZulu-Natal"},
	// Private institutions
	{Choice{"st_augustine", "St. Augustine College of South Africa"}, "Johannesburg", "Gauteng"},
	{Choice{"milpark", "Milpark Education"}, "Johannesburg", "Gauteng"},
	{Choice{"iie_msa", "IIE Monash South Africa"}, "Johannesburg", "Gauteng"},
	{Choice{"regent", "Regent Business School"}, "Durban", "KwaZulu-Natal"},
	{Choice{"mancosa", "Management College of Southern Africa"}, "Durban", "KwaZulu-Natal"},
	{Choice{"afda", "AFDA - The South African School of Motion Picture and Live Performance"}, "Johannesburg", "Gauteng"},
	{Choice{"regenesys", "Regenesys Business School"}, "Johannesburg", "Gauteng"},
	{Choice{"henley", "Henley Business School Africa"}, "Johannesburg", "Gauteng"},
	{Choice{"boston", "Boston City Campus & Business College"}, "Stellenbosch", "Western Cape"},
	{Choice{"damelin", "Damelin"}, "Johannesburg", "Gauteng"},
	{Choice{"varsity", "Varsity College"}, "Johannesburg", "Gauteng"},
	{Choice{"rosebank", "Rosebank College"}, "Johannesburg", "Gauteng"},
	{Choice{"imm", "IMM Graduate School of Marketing"}, "Johannesburg", "Gauteng"},
	{Choice{"pearson", "Pearson Institute of Higher Education"}, "Johannesburg", "Gauteng"},
	{Choice{"aaa", "AAA School of Advertising"}, "Johannesburg", "Gauteng"},
	{Choice{"vega", "Vega School"}, "Cape Town", "Western Cape"},
	{Choice{"daf", "Design Academy of Fashion"}, "Cape Town", "Western Cape"},
	{Choice{"animation_school", "The Animation School"}, "Cape Town", "Western Cape"},
	{Choice{"cti", "CTI Education Group"}, "Johannesburg", "Gauteng"},
	{Choice{"belgium_campus", "Belgium Campus ITversity"}, "Pretoria", "Gauteng"},
	{Choice{"richfield", "Richfield Graduate Institute of Technology"}, "Johannesburg", "Gauteng"},
	{Choice{"healthnicon", "Healthnicon Nursing College"}, "Johannesburg", "Gauteng"},
	{Choice{"life_college", "Life College of Learning"}, "Johannesburg", "Gauteng"},
	{Choice{"netcare", "Netcare Education"}, "Johannesburg", "Gauteng"},
	// TVET colleges
	{Choice{"swgc", "South West Gauteng TVET College"}, "Soweto", "Gauteng"},
	{Choice{"ewc", "Ekurhuleni West TVET College"}, "Germiston", "Gauteng"},
	{Choice{"false_bay", "False Bay TVET College"}, "Cape Town", "Western Cape"},
	{Choice{"tnc", "Tshwane North TVET College"}, "Pretoria", "Gauteng"},
	{Choice{"cjc", "Central Johannesburg TVET College"}, "Johannesburg", "Gauteng"},
}

var PropertyTypeChoices = []Choice{
	{"residence_hall", "University Residence Hall"},
	{"private_residence", "Private Student Residence"},
	{"shared_apartment", "Shared Apartment"},
	{"studio_apartment", "Studio Apartment"},
	{"flat", "Flat"},
	{"house_share", "House Share"},
	{"host_family", "Host Family"},
	{"commune", "Commune"},
	{"boarding_house", "Boarding House"},
	{"single_room", "Single Room"},
	{"double_room", "Double Room"},
	{"cottage", "Cottage"},
	{"garden_flat", "Garden Flat"},
	{"loft_apartment", "Loft Apartment"},
	{"penthouse", "Penthouse"},
	{"on_campus_residence", "On-Campus Residence"},
	{"off_campus_residence", "Off-Campus Residence"},
	{"student_village", "Student Village"},
	{"guesthouse", "Guesthouse"},
	{"serviced_apartment", "Serviced Apartment"},
}

var PaymentMethodChoices = []Choice{
	{"bursary", "Bursary"},
	{"nsfas", "NSFAS"},
	{"self_funded", "Self-funded"},
	{"student_loan", "Student Loan"},
}

var AmenityChoices = []Choice{
	{"wifi", "WiFi Included"},
	{"water_included", "Water Included"},
	{"microwave", "Microwave"},
	{"stove_top", "Stove Top"},
	{"refrigerator", "Refrigerator"},
	{"kettle", "Kettle"},
	{"toaster", "Toaster"},
	{"oven", "Oven"},
	{"washing_machine", "Washing Machine"},
	{"dining_table_chairs", "Dining Table and Chairs"},
	{"couch", "Couch"},
	{"dustbin", "Dustbin"},
	{"washing_line", "Washing Line"},
	{"cutlery", "Cutlery"},
	{"crockery", "Crockery"},
	{"free_laundry", "Free Laundry"},
	{"cleaning_services", "Cleaning Services"},
	{"cctv", "CCTV"},
	{"burglar_bars", "Burglar Bars in Bedrooms"},
	{"electric_fencing", "Electric Fencing"},
	{"on_site_manager", "On-Site Manager"},
	{"security_officer", "Security Officer"},
	{"front_desk", "24h Front Desk"},
	{"wheelchair_access", "Wheelchair Access"},
	{"lift_access", "Lift Access"},
	{"computer_room", "Computer Room"},
	{"gym", "Gym (On Site)"},
	{"garden", "Garden"},
	{"off_street_parking", "Off-Street Parking"},
	{"smart_lock", "Smart Locks"},
	{"study_desk", "Study Desk"},
	{"braai_area", "Braai Area"},
	{"shared_kitchen", "Shared Kitchen"},
	{"kitchenette", "Kitchenette"},
	{"individual_bathrooms", "Private Bathrooms"},
	{"shared_lounge", "Shared Lounge Area"},
	{"bike_rack", "Bike Storage"},
	{"events_space", "Events or Meeting Room"},
	{"study_room", "Study Room"},
	{"library", "Library"},
	{"trash_service", "Trash Collection Service"},
	{"meal_plan", "Meal Plan Available"},
	{"coffee_machine", "Coffee Machine"},
	{"printer_scanner", "Printer - Scanner Available"},
	{"fire_safety", "Fire Alarms - Extinguishers"},
	{"proximity_campus", "Close to Campus"},
	{"proximity_transport", "Close to Public Transport"},
	{"parking", "Parking Spaces"},
	{"air_conditioning", "Air Conditioning"},
	{"heating", "Heating Included"},
	{"pet_friendly", "Pet-Friendly Accommodation"},
}

var StudyLevelChoices = []Choice{
	{"certificate", "Certificate"},
	{"diploma", "Diploma"},
	{"degree", "Degree"},
	{"honours", "Honours"},
	{"masters", "Masters"},
	{"phd", "PhD"},
}

var EducationLevelChoices = []Choice{
	{"undergraduate", "Undergraduate"},
	{"postgraduate", "Postgraduate"},
}

// FieldOfStudyChoices is the starter set; operators add more out of band
var FieldOfStudyChoices = []Choice{
	{"accounting", "Accounting"},
	{"actuarial_science", "Actuarial Science"},
	{"agriculture", "Agriculture"},
	{"architecture", "Architecture"},
	{"commerce", "Commerce"},
	{"computer_science", "Computer Science"},
	{"education", "Education"},
	{"engineering", "Engineering"},
	{"health_sciences", "Health Sciences"},
	{"humanities", "Humanities"},
	{"information_technology", "Information Technology"},
	{"law", "Law"},
	{"medicine", "Medicine"},
	{"mining", "Mining"},
	{"natural_sciences", "Natural Sciences"},
	{"nursing", "Nursing"},
}
