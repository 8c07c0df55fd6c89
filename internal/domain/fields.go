package domain

import "github.com/mvaleed/catalog/internal/result"

// User fields.
const (
	FieldFirstName result.Field = "FirstName"
	FieldLastName  result.Field = "LastName"
	FieldEmail     result.Field = "Email"
	FieldPassword  result.Field = "Password"
	FieldRole      result.Field = "Role"
)

// Game fields.
const (
	FieldName         result.Field = "Name"
	FieldDescription  result.Field = "Description"
	FieldDeveloper    result.Field = "Developer"
	FieldPublisher    result.Field = "Publisher"
	FieldPrice        result.Field = "Price"
	FieldDiskSize     result.Field = "DiskSize"
	FieldAgeRating    result.Field = "AgeRating"
	FieldReleaseDate  result.Field = "ReleaseDate"
	FieldOfficialLink result.Field = "OfficialLink"
)

// Identifier fields. Names match the command fields they are parsed from.
const (
	FieldID      result.Field = "ID"
	FieldActorID result.Field = "ActorID"
	FieldGameID  result.Field = "GameID"
)
