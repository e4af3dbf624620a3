package question

import "quizmaster/internal/model"

// fallbackBank covers the maximum question count of a single game so a room
// can always be filled when both providers are down. IDs and time limits are
// assigned at selection time.
var fallbackBank = []model.Question{
	{
		Prompt:        "What is the capital of France?",
		Options:       []string{"London", "Berlin", "Paris", "Madrid"},
		CorrectAnswer: "Paris",
		Category:      "Geography",
		Difficulty:    model.DifficultyEasy,
	},
	{
		Prompt:        "What is 2 + 2?",
		Options:       []string{"3", "4", "5", "6"},
		CorrectAnswer: "4",
		Category:      "Mathematics",
		Difficulty:    model.DifficultyEasy,
	},
	{
		Prompt:        "Who painted the Mona Lisa?",
		Options:       []string{"Van Gogh", "Picasso", "Leonardo da Vinci", "Monet"},
		CorrectAnswer: "Leonardo da Vinci",
		Category:      "Art",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "Which planet is closest to the Sun?",
		Options:       []string{"Venus", "Mercury", "Mars", "Earth"},
		CorrectAnswer: "Mercury",
		Category:      "Science",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "In which year did the French Revolution begin?",
		Options:       []string{"1789", "1792", "1799", "1804"},
		CorrectAnswer: "1789",
		Category:      "History",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "Which chemical element has the symbol 'O'?",
		Options:       []string{"Gold", "Oxygen", "Osmium", "Oganesson"},
		CorrectAnswer: "Oxygen",
		Category:      "Science",
		Difficulty:    model.DifficultyEasy,
	},
	{
		Prompt:        "Who wrote 'Les Misérables'?",
		Options:       []string{"Victor Hugo", "Émile Zola", "Gustave Flaubert", "Marcel Proust"},
		CorrectAnswer: "Victor Hugo",
		Category:      "Literature",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "How many continents are there on Earth?",
		Options:       []string{"5", "6", "7", "8"},
		CorrectAnswer: "7",
		Category:      "Geography",
		Difficulty:    model.DifficultyEasy,
	},
	{
		Prompt:        "What is the speed of light in a vacuum?",
		Options:       []string{"300,000 km/s", "150,000 km/s", "450,000 km/s", "600,000 km/s"},
		CorrectAnswer: "300,000 km/s",
		Category:      "Science",
		Difficulty:    model.DifficultyHard,
	},
	{
		Prompt:        "Who composed the Ninth Symphony?",
		Options:       []string{"Mozart", "Bach", "Beethoven", "Chopin"},
		CorrectAnswer: "Beethoven",
		Category:      "Music",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "What is the largest ocean in the world?",
		Options:       []string{"Atlantic", "Indian", "Arctic", "Pacific"},
		CorrectAnswer: "Pacific",
		Category:      "Geography",
		Difficulty:    model.DifficultyEasy,
	},
	{
		Prompt:        "In which year did humans first walk on the Moon?",
		Options:       []string{"1967", "1969", "1971", "1973"},
		CorrectAnswer: "1969",
		Category:      "History",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "What is the chemical formula of water?",
		Options:       []string{"H2O", "CO2", "NaCl", "CH4"},
		CorrectAnswer: "H2O",
		Category:      "Science",
		Difficulty:    model.DifficultyEasy,
	},
	{
		Prompt:        "Who invented the telephone?",
		Options:       []string{"Thomas Edison", "Alexander Graham Bell", "Nikola Tesla", "Benjamin Franklin"},
		CorrectAnswer: "Alexander Graham Bell",
		Category:      "History",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "How many sides does a hexagon have?",
		Options:       []string{"5", "6", "7", "8"},
		CorrectAnswer: "6",
		Category:      "Mathematics",
		Difficulty:    model.DifficultyEasy,
	},
	{
		Prompt:        "What is the currency of Japan?",
		Options:       []string{"Yuan", "Won", "Yen", "Ringgit"},
		CorrectAnswer: "Yen",
		Category:      "General Knowledge",
		Difficulty:    model.DifficultyEasy,
	},
	{
		Prompt:        "Who wrote '1984'?",
		Options:       []string{"George Orwell", "Aldous Huxley", "Ray Bradbury", "Isaac Asimov"},
		CorrectAnswer: "George Orwell",
		Category:      "Literature",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "What is the highest mountain in the world?",
		Options:       []string{"K2", "Mount Everest", "Kangchenjunga", "Lhotse"},
		CorrectAnswer: "Mount Everest",
		Category:      "Geography",
		Difficulty:    model.DifficultyEasy,
	},
	{
		Prompt:        "How many players are on a football team?",
		Options:       []string{"10", "11", "12", "13"},
		CorrectAnswer: "11",
		Category:      "Sports",
		Difficulty:    model.DifficultyEasy,
	},
	{
		Prompt:        "What is the most spoken language in the world?",
		Options:       []string{"English", "Spanish", "Mandarin Chinese", "Hindi"},
		CorrectAnswer: "Mandarin Chinese",
		Category:      "General Knowledge",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "What is the smallest country in the world?",
		Options:       []string{"Monaco", "Vatican City", "Nauru", "San Marino"},
		CorrectAnswer: "Vatican City",
		Category:      "Geography",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "How many strings does a classical guitar have?",
		Options:       []string{"4", "5", "6", "7"},
		CorrectAnswer: "6",
		Category:      "Music",
		Difficulty:    model.DifficultyEasy,
	},
	{
		Prompt:        "Who developed the theory of relativity?",
		Options:       []string{"Isaac Newton", "Albert Einstein", "Galileo Galilei", "Stephen Hawking"},
		CorrectAnswer: "Albert Einstein",
		Category:      "Science",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "What is the longest river in the world?",
		Options:       []string{"Amazon", "Nile", "Mississippi", "Yangtze"},
		CorrectAnswer: "Nile",
		Category:      "Geography",
		Difficulty:    model.DifficultyMedium,
	},
	{
		Prompt:        "Which gas do plants absorb from the atmosphere?",
		Options:       []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Hydrogen"},
		CorrectAnswer: "Carbon dioxide",
		Category:      "Science",
		Difficulty:    model.DifficultyEasy,
	},
}
