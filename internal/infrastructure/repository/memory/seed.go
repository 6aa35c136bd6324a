package memory

import (
	"github.com/kickaround/pickup-league/internal/domain/player"
)

// SeedPlayers is the demo pool used when the API runs without a database.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "p-dave-smith", FirstName: "Dave", LastName: "Smith"},
		{ID: "p-jim-jones", FirstName: "Jim", LastName: "Jones"},
		{ID: "p-andy-taylor", FirstName: "Andy", LastName: "Taylor"},
		{ID: "p-rob-wilson", FirstName: "Rob", LastName: "Wilson"},
		{ID: "p-steve-brown", FirstName: "Steve", LastName: "Brown"},
		{ID: "p-mark-davies", FirstName: "Mark", LastName: "Davies"},
		{ID: "p-paul-evans", FirstName: "Paul", LastName: "Evans"},
		{ID: "p-chris-thomas", FirstName: "Chris", LastName: "Thomas"},
		{ID: "p-mike-roberts", FirstName: "Mike", LastName: "Roberts"},
		{ID: "p-john-walker", FirstName: "John", LastName: "Walker"},
		{ID: "p-gary-wright", FirstName: "Gary", LastName: "Wright"},
		{ID: "p-tony-green", FirstName: "Tony", LastName: "Green"},
		{ID: "p-neil-hall", FirstName: "Neil", LastName: "Hall"},
		{ID: "p-ian-wood", FirstName: "Ian", LastName: "Wood"},
		{ID: "p-phil-martin", FirstName: "Phil", LastName: "Martin"},
		{ID: "p-lee-clarke", FirstName: "Lee", LastName: "Clarke"},
		{ID: "p-sam-white", FirstName: "Sam", LastName: "White"},
		{ID: "p-joe-harris", FirstName: "Joe", LastName: "Harris"},
		{ID: "p-dan-lewis", FirstName: "Dan", LastName: "Lewis"},
		{ID: "p-ben-young", FirstName: "Ben", LastName: "Young"},
	}
}
