package models

// Renovation types
const (
	RenovationKitchen    = "kitchen"
	RenovationBathroom   = "bathroom"
	RenovationBedroom    = "bedroom"
	RenovationLivingRoom = "living_room"
	RenovationFullHome   = "full_home"
	RenovationWholeHouse = "whole_house" // older alias of full_home
	RenovationOther      = "other"
)

// Styles
const (
	StyleModern       = "modern"
	StyleTraditional  = "traditional"
	StyleContemporary = "contemporary"
	StyleRustic       = "rustic"
	StyleIndustrial   = "industrial"
	StyleScandinavian = "scandinavian"
	StyleMinimalist   = "minimalist" // older alias of scandinavian
)

// Timelines
const (
	TimelineASAP          = "asap"
	TimelineOneToThree    = "1-3_months"
	TimelineThreeToSix    = "3-6_months"
	TimelineSixMonthsPlus = "6+_months"
)
