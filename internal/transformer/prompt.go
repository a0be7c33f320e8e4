package transformer

// extractionPrompt instructs the model to emit a single JSON array mixing
// node items ({id, type, properties}) and relationship items
// ({source, target, type, properties}).
const extractionPrompt = `You are an expert at building knowledge graphs.
From the provided text, extract all meaningful entities as nodes and the relationships between them.
Your output MUST be a single, valid JSON array of nodes and relationships.
Each node must have an "id" and a "type".
Each relationship must have a "source" (the ID of the source node), a "target" (the ID of the target node), and a "type".
Nodes and relationships can have an optional "properties" object for additional attributes.
Do not include any other text, comments, or markdown formatting in your response.

Here is an example:

Text to process:
---
In a major tech deal, Google, a software company, officially acquired YouTube for $1.65 billion on October 9, 2006.
---

JSON:
[
    {
        "id": "Google",
        "type": "Company",
        "properties": {
            "sector": "Software"
        }
    },
    {
        "id": "YouTube",
        "type": "Product"
    },
    {
        "source": "Google",
        "target": "YouTube",
        "type": "ACQUIRED",
        "properties": {
            "price": "$1.65 billion",
            "date": "October 9, 2006"
        }
    }
]`
