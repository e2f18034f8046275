package models

const ContextSeparator = "\n\n"

var AnswerPromptTemplate = `Based on the following context, please answer the user's question.

Context:
%s

User Question: %s

Please provide a comprehensive answer based on the context provided. If the context doesn't contain relevant information, you can use your general knowledge.`
