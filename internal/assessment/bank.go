package assessment

import "errors"

// ErrUnknownInterest means a user's declared interest has no quiz behind
// it. This is a configuration fault, not user error.
var ErrUnknownInterest = errors.New("no question bank for interest")

// Question is one multiple-choice quiz question. Answer always matches
// exactly one of Options; it is never serialized to the client.
type Question struct {
	Text    string
	Options []string
	Answer  string
}

// Categories are the five interest categories offered at registration,
// in display order. Each has a fixed 5-question bank.
var Categories = []string{"C#", "VBA", "Python", "Java", "SQL"}

var questionBank = map[string][]Question{
	"C#": {
		{
			Text:    "What does the keyword 'public' mean in C#?",
			Options: []string{"Accessible only within the same class", "Accessible throughout the same namespace", "Accessible from any assembly", "Accessible only within the same file"},
			Answer:  "Accessible from any assembly",
		},
		{
			Text:    "What is the purpose of the 'using' statement in C#?",
			Options: []string{"Declaring variables", "Defining a class", "Managing resources like file handling", "Loop control"},
			Answer:  "Managing resources like file handling",
		},
		{
			Text:    "Which of the following data types is not available in C#?",
			Options: []string{"int", "char", "double", "variant"},
			Answer:  "variant",
		},
		{
			Text:    "What does 'LINQ' stand for in C#?",
			Options: []string{"Language-Integrated Query", "Linked Information Network Query", "Looping Integrated Query", "Logical Interaction Query"},
			Answer:  "Language-Integrated Query",
		},
		{
			Text:    "What is a 'delegate' in C# used for?",
			Options: []string{"Managing file I/O", "Error handling", "Representing a reference to a method", "Defining database schemas"},
			Answer:  "Representing a reference to a method",
		},
	},
	"VBA": {
		{
			Text:    "What does VBA stand for?",
			Options: []string{"Visual Basic for Applications", "Very Basic Application", "Virtual Business Automation", "Vital Business Analysis"},
			Answer:  "Visual Basic for Applications",
		},
		{
			Text:    "In VBA, which object is used to interact with Excel worksheets?",
			Options: []string{"Forms", "Workbooks", "Folders", "Frames"},
			Answer:  "Workbooks",
		},
		{
			Text:    "What is a 'macro' in VBA?",
			Options: []string{"A type of variable", "A spreadsheet cell", "A recorded sequence of actions", "A loop construct"},
			Answer:  "A recorded sequence of actions",
		},
		{
			Text:    "Which VBA function is used to display a message box?",
			Options: []string{"msgBox()", "popUpBox()", "displayMsg()", "showMessage()"},
			Answer:  "msgBox()",
		},
		{
			Text:    "What file extension is commonly associated with VBA macro-enabled Excel files?",
			Options: []string{".xls", ".csv", ".vba", ".xlsm"},
			Answer:  ".xlsm",
		},
	},
	"Python": {
		{
			Text:    "Which of the following is used to define a comment in Python?",
			Options: []string{"// Comment", "/* Comment */", "# Comment", "-- Comment"},
			Answer:  "# Comment",
		},
		{
			Text:    "How do you import an external Python module?",
			Options: []string{"import module_name", "include module_name", "add module_name", "require module_name"},
			Answer:  "import module_name",
		},
		{
			Text:    "What does the len() function do in Python?",
			Options: []string{"Convert to lowercase", "Calculate the length of a string or list", "Remove elements from a list", "Format text"},
			Answer:  "Calculate the length of a string or list",
		},
		{
			Text:    "Which Python data structure stores an ordered, changeable collection with no duplicate elements?",
			Options: []string{"Array", "Dictionary", "Set", "Tuple"},
			Answer:  "Set",
		},
		{
			Text:    "How do you open and read a text file in Python?",
			Options: []string{"open_file()", "read_file()", "with open() as file:", "file.open() and file.read()"},
			Answer:  "with open() as file:",
		},
	},
	"Java": {
		{
			Text:    "What is the entry point for a Java application?",
			Options: []string{"main()", "start()", "run()", "execute()"},
			Answer:  "main()",
		},
		{
			Text:    "Which access modifier is used for a variable that should only be accessible within its own class in Java?",
			Options: []string{"public", "private", "protected", "static"},
			Answer:  "private",
		},
		{
			Text:    "In Java, what is a 'NullPointerException'?",
			Options: []string{"An exception thrown when dividing by zero", "An exception caused by a missing import statement", "An exception indicating that an object is not initialized", "An exception when a loop runs infinitely"},
			Answer:  "An exception indicating that an object is not initialized",
		},
		{
			Text:    "What is a 'constructor' in Java used for?",
			Options: []string{"Initializing a class's fields", "Performing mathematical calculations", "Creating loops", "Running database queries"},
			Answer:  "Initializing a class's fields",
		},
		{
			Text:    "Which Java keyword is used to implement inheritance between classes?",
			Options: []string{"inherit", "extend", "implement", "interface"},
			Answer:  "extend",
		},
	},
	"SQL": {
		{
			Text:    "What does SQL stand for?",
			Options: []string{"Structured Query Language", "Simple Query Language", "Standard Query Logic", "Structured Query Logic"},
			Answer:  "Structured Query Language",
		},
		{
			Text:    "Which SQL statement is used to retrieve data from a database?",
			Options: []string{"SELECT", "RETRIEVE", "GET", "QUERY"},
			Answer:  "SELECT",
		},
		{
			Text:    "What is an SQL 'JOIN' clause used for?",
			Options: []string{"Splitting a table into two tables", "Combining rows from two or more tables", "Deleting data from a table", "Sorting data"},
			Answer:  "Combining rows from two or more tables",
		},
		{
			Text:    "What SQL clause is used to filter the results of a query?",
			Options: []string{"SORT BY", "FILTER", "GROUP BY", "WHERE"},
			Answer:  "WHERE",
		},
		{
			Text:    "In SQL, which type of key uniquely identifies each row in a table?",
			Options: []string{"Primary Key", "Foreign Key", "Super Key", "Composite Key"},
			Answer:  "Primary Key",
		},
	},
}

// KnownInterest reports whether interest has a question bank.
func KnownInterest(interest string) bool {
	_, ok := questionBank[interest]
	return ok
}

// QuestionsFor returns the ordered question set for an interest category.
func QuestionsFor(interest string) ([]Question, error) {
	qs, ok := questionBank[interest]
	if !ok {
		return nil, ErrUnknownInterest
	}
	return qs, nil
}

// AnswerKey returns the question → correct option mapping for an interest
// category.
func AnswerKey(interest string) (map[string]string, error) {
	qs, ok := questionBank[interest]
	if !ok {
		return nil, ErrUnknownInterest
	}
	key := make(map[string]string, len(qs))
	for _, q := range qs {
		key[q.Text] = q.Answer
	}
	return key, nil
}
