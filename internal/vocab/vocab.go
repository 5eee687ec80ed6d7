// Package vocab holds the English vocabulary database for Polish
// primary-school grades 1-3.
package vocab

import "sort"

// Word is one vocabulary entry
type Word struct {
	English  string
	Polish   string
	Category string
}

// ByGrade returns the word list for a grade tier (1-3). Unknown grades
// yield an empty list.
func ByGrade(grade int) []Word {
	switch grade {
	case 1:
		return grade1
	case 2:
		return grade2
	case 3:
		return grade3
	}
	return nil
}

// ByCategory returns a grade's words for one category
func ByCategory(grade int, category string) []Word {
	var matched []Word
	for _, w := range ByGrade(grade) {
		if w.Category == category {
			matched = append(matched, w)
		}
	}
	return matched
}

// Categories returns the sorted category names for a grade
func Categories(grade int) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, w := range ByGrade(grade) {
		if !seen[w.Category] {
			seen[w.Category] = true
			categories = append(categories, w.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

var grade1 = []Word{
	// Colors
	{"red", "czerwony", "colors"},
	{"blue", "niebieski", "colors"},
	{"yellow", "żółty", "colors"},
	{"green", "zielony", "colors"},
	{"black", "czarny", "colors"},
	{"white", "biały", "colors"},
	{"pink", "różowy", "colors"},
	{"orange", "pomarańczowy", "colors"},

	// Numbers
	{"one", "jeden", "numbers"},
	{"two", "dwa", "numbers"},
	{"three", "trzy", "numbers"},
	{"four", "cztery", "numbers"},
	{"five", "pięć", "numbers"},
	{"six", "sześć", "numbers"},
	{"seven", "siedem", "numbers"},
	{"eight", "osiem", "numbers"},
	{"nine", "dziewięć", "numbers"},
	{"ten", "dziesięć", "numbers"},

	// Family
	{"mother", "mama", "family"},
	{"father", "tata", "family"},
	{"sister", "siostra", "family"},
	{"brother", "brat", "family"},
	{"grandmother", "babcia", "family"},
	{"grandfather", "dziadek", "family"},

	// Animals
	{"cat", "kot", "animals"},
	{"dog", "pies", "animals"},
	{"bird", "ptak", "animals"},
	{"fish", "ryba", "animals"},
	{"rabbit", "królik", "animals"},
	{"mouse", "mysz", "animals"},
	{"horse", "koń", "animals"},
	{"cow", "krowa", "animals"},

	// School
	{"book", "książka", "school"},
	{"pen", "długopis", "school"},
	{"pencil", "ołówek", "school"},
	{"desk", "ławka", "school"},
	{"teacher", "nauczyciel", "school"},
	{"student", "uczeń", "school"},

	// Basic words
	{"hello", "cześć", "basic"},
	{"goodbye", "do widzenia", "basic"},
	{"yes", "tak", "basic"},
	{"no", "nie", "basic"},
	{"please", "proszę", "basic"},
	{"thank you", "dziękuję", "basic"},
}

var grade2 = []Word{
	// More animals
	{"elephant", "słoń", "animals"},
	{"lion", "lew", "animals"},
	{"tiger", "tygrys", "animals"},
	{"bear", "niedźwiedź", "animals"},
	{"monkey", "małpa", "animals"},
	{"giraffe", "żyrafa", "animals"},
	{"zebra", "zebra", "animals"},
	{"penguin", "pingwin", "animals"},

	// Food
	{"apple", "jabłko", "food"},
	{"banana", "banan", "food"},
	{"bread", "chleb", "food"},
	{"milk", "mleko", "food"},
	{"water", "woda", "food"},
	{"juice", "sok", "food"},
	{"cheese", "ser", "food"},
	{"egg", "jajko", "food"},
	{"pizza", "pizza", "food"},
	{"ice cream", "lody", "food"},

	// Body parts
	{"head", "głowa", "body"},
	{"hand", "ręka", "body"},
	{"foot", "stopa", "body"},
	{"eye", "oko", "body"},
	{"ear", "ucho", "body"},
	{"nose", "nos", "body"},
	{"mouth", "usta", "body"},
	{"leg", "noga", "body"},

	// Clothes
	{"shirt", "koszula", "clothes"},
	{"pants", "spodnie", "clothes"},
	{"dress", "sukienka", "clothes"},
	{"shoes", "buty", "clothes"},
	{"hat", "kapelusz", "clothes"},
	{"jacket", "kurtka", "clothes"},
	{"socks", "skarpetki", "clothes"},

	// Weather
	{"sun", "słońce", "weather"},
	{"rain", "deszcz", "weather"},
	{"snow", "śnieg", "weather"},
	{"wind", "wiatr", "weather"},
	{"cloud", "chmura", "weather"},

	// Verbs
	{"run", "biegać", "verbs"},
	{"jump", "skakać", "verbs"},
	{"walk", "chodzić", "verbs"},
	{"eat", "jeść", "verbs"},
	{"drink", "pić", "verbs"},
	{"sleep", "spać", "verbs"},
	{"play", "bawić się", "verbs"},
	{"read", "czytać", "verbs"},
	{"write", "pisać", "verbs"},
	{"sing", "śpiewać", "verbs"},
}

var grade3 = []Word{
	// Days of the week
	{"Monday", "poniedziałek", "days"},
	{"Tuesday", "wtorek", "days"},
	{"Wednesday", "środa", "days"},
	{"Thursday", "czwartek", "days"},
	{"Friday", "piątek", "days"},
	{"Saturday", "sobota", "days"},
	{"Sunday", "niedziela", "days"},

	// Months
	{"January", "styczeń", "months"},
	{"February", "luty", "months"},
	{"March", "marzec", "months"},
	{"April", "kwiecień", "months"},
	{"May", "maj", "months"},
	{"June", "czerwiec", "months"},

	// House
	{"house", "dom", "house"},
	{"room", "pokój", "house"},
	{"kitchen", "kuchnia", "house"},
	{"bathroom", "łazienka", "house"},
	{"bedroom", "sypialnia", "house"},
	{"window", "okno", "house"},
	{"door", "drzwi", "house"},
	{"table", "stół", "house"},
	{"chair", "krzesło", "house"},
	{"bed", "łóżko", "house"},

	// Nature
	{"tree", "drzewo", "nature"},
	{"flower", "kwiat", "nature"},
	{"grass", "trawa", "nature"},
	{"mountain", "góra", "nature"},
	{"river", "rzeka", "nature"},
	{"lake", "jezioro", "nature"},
	{"sea", "morze", "nature"},
	{"forest", "las", "nature"},

	// Adjectives
	{"big", "duży", "adjectives"},
	{"small", "mały", "adjectives"},
	{"tall", "wysoki", "adjectives"},
	{"short", "niski", "adjectives"},
	{"hot", "gorący", "adjectives"},
	{"cold", "zimny", "adjectives"},
	{"fast", "szybki", "adjectives"},
	{"slow", "wolny", "adjectives"},
	{"happy", "szczęśliwy", "adjectives"},
	{"sad", "smutny", "adjectives"},
	{"good", "dobry", "adjectives"},
	{"bad", "zły", "adjectives"},

	// More verbs
	{"swim", "pływać", "verbs"},
	{"fly", "latać", "verbs"},
	{"dance", "tańczyć", "verbs"},
	{"draw", "rysować", "verbs"},
	{"listen", "słuchać", "verbs"},
	{"speak", "mówić", "verbs"},
	{"watch", "oglądać", "verbs"},
	{"help", "pomagać", "verbs"},
	{"learn", "uczyć się", "verbs"},
	{"teach", "uczyć", "verbs"},

	// Transportation
	{"car", "samochód", "transportation"},
	{"bus", "autobus", "transportation"},
	{"train", "pociąg", "transportation"},
	{"bicycle", "rower", "transportation"},
	{"plane", "samolot", "transportation"},
	{"boat", "łódź", "transportation"},
}
